package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"passport/internal/passport/metrics"
	"passport/internal/passport/service"
	"passport/internal/passport/store/registry"
	"passport/internal/platform/config"
	"passport/internal/platform/logger"
	id "passport/pkg/domain"
	"passport/pkg/platform/audit"
	"passport/pkg/platform/audit/publisher"
	"passport/pkg/platform/audit/store/memory"
	"passport/pkg/requestcontext"
)

// main wires the registry, audit trail and metrics into the issuance service
// and walks one passport through its whole lifecycle.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg, os.Stderr)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	store := registry.Default()
	m.RegisterRegistrySize(func() float64 {
		n, _ := store.Count(context.Background())
		return float64(n)
	})

	auditStore := memory.NewInMemoryStore()
	pub := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.AuditBuffer),
		publisher.WithLogger(log))

	svc, err := service.New(store,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(pub))
	if err != nil {
		log.Error("failed to build service", "error", err)
		os.Exit(1)
	}

	ctx := requestcontext.WithRequestID(context.Background(), "demo")
	passportID, ok := run(ctx, svc, os.Stdout)

	pub.Close()
	if ok {
		printTrail(ctx, pub, passportID, os.Stdout)
	}
	log.Info("simulation complete", "audit_events", auditStore.Len())

	if cfg.MetricsDump {
		if err := dumpMetrics(reg, os.Stdout); err != nil {
			log.Error("failed to dump metrics", "error", err)
		}
	}
}

// auditTrail reads back the events recorded for one passport.
type auditTrail interface {
	List(ctx context.Context, passportID id.PassportID) ([]audit.Event, error)
}

// run plays the issuance scenario and returns the ID of the passport it
// issued, or false when issuance failed.
func run(ctx context.Context, svc *service.Service, out io.Writer) (id.PassportID, bool) {
	now := requestcontext.Now(ctx)

	fmt.Fprintln(out, "1. Issuing a valid passport...")
	p, ok := svc.Issue(ctx, service.IssueRequest{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		Nationality: "American",
	})
	if !ok {
		fmt.Fprintln(out, "   Failure to issue passport for John Doe.")
		return id.PassportID{}, false
	}
	fmt.Fprintln(out, "   Success:", p.Summary(now))

	fmt.Fprintln(out, "2. Attempting to issue a passport with a future date of birth...")
	if _, ok := svc.Issue(ctx, service.IssueRequest{
		FirstName:   "Jane",
		LastName:    "Smith",
		DateOfBirth: now.AddDate(0, 0, 1),
		Nationality: "Canadian",
	}); !ok {
		fmt.Fprintln(out, "   Rejected as expected.")
	}

	fmt.Fprintln(out, "3. Retrieving and adding stamps to John's passport...")
	lookupID, err := id.ParsePassportID(p.ID().String())
	if err != nil {
		fmt.Fprintln(out, "   Invalid passport ID:", err)
		return p.ID(), true
	}
	for _, country := range []string{"Spain", "France", "Japan"} {
		svc.AddStamp(ctx, lookupID, country)
	}
	if retrieved, ok := svc.Retrieve(ctx, lookupID); ok {
		fmt.Fprintln(out, "   Retrieved:", retrieved.Summary(now))
		fmt.Fprintln(out, "   Stamps:", retrieved.StampLog())
		fmt.Fprintln(out, "   Is Expired?", retrieved.IsExpired(now))
	}

	fmt.Fprintln(out, "4. Revoking John's passport...")
	status := "Failed"
	if svc.Revoke(ctx, p.ID()) {
		status = "Successful"
	}
	fmt.Fprintln(out, "   Revocation status:", status)
	_, stillThere := svc.Retrieve(ctx, p.ID())
	fmt.Fprintln(out, "   Attempting to retrieve again:", stillThere)
	return p.ID(), true
}

// printTrail lists the audit events recorded for passportID in order.
func printTrail(ctx context.Context, trail auditTrail, passportID id.PassportID, out io.Writer) {
	events, err := trail.List(ctx, passportID)
	if err != nil {
		fmt.Fprintln(out, "Audit trail unavailable:", err)
		return
	}
	fmt.Fprintf(out, "Audit trail for %s:\n", passportID.Short())
	for _, event := range events {
		fmt.Fprintf(out, "   %s %s\n", event.Timestamp.Format(time.RFC3339), event.Action)
	}
}

func dumpMetrics(g prometheus.Gatherer, out io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
