// Command devserver runs a local stand-in for the pgdesk auth backend.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/pgdesk/internal/buildinfo"
	"github.com/dmitrijs2005/pgdesk/internal/devserver"
	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	opts := devserver.DefaultOptions()

	addr := flag.String("a", ":3000", "listen address")
	flag.StringVar(&opts.Prefix, "p", opts.Prefix, "route prefix")
	flag.StringVar(&opts.Secret, "k", opts.Secret, "token signing secret")
	flag.StringVar(&opts.FixedCode, "otp", "", "issue this code instead of a random one")
	seedPhone := flag.String("seed-phone", "", "register a demo owner with this phone number")
	logLevel := flag.String("l", "info", "log level")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(*logLevel, os.Stderr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := devserver.New(opts, logger, reg)

	if *seedPhone != "" {
		owner := devserver.Owner{
			Name:          "Demo Owner",
			Email:         "owner@example.com",
			PhoneNumber:   *seedPhone,
			OwnershipType: "OWNED",
		}
		if err := srv.Owners().Register(owner, "password"); err != nil {
			log.Fatalf("seed owner: %v", err)
		}
		logger.Info(ctx, "seeded owner", "phone", *seedPhone)
	}

	if err := srv.Run(ctx, *addr); err != nil {
		log.Fatalf("%v", err)
	}

}
