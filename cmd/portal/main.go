package main

import (
	"context"

	bookinghandler "condohub/internal/bookings/handler"
	bookingrepo "condohub/internal/bookings/repository"
	bookingservice "condohub/internal/bookings/service"
	bookingvalidator "condohub/internal/bookings/validator"
	condohandler "condohub/internal/condominiums/handler"
	condorepo "condohub/internal/condominiums/repository"
	condoservice "condohub/internal/condominiums/service"
	eventhandler "condohub/internal/events/handler"
	eventrepo "condohub/internal/events/repository"
	eventservice "condohub/internal/events/service"
	eventvalidator "condohub/internal/events/validator"
	newsletterhandler "condohub/internal/newsletters/handler"
	newsletterrepo "condohub/internal/newsletters/repository"
	newsletterservice "condohub/internal/newsletters/service"
	pollhandler "condohub/internal/polls/handler"
	pollrepo "condohub/internal/polls/repository"
	pollservice "condohub/internal/polls/service"
	resourcehandler "condohub/internal/resources/handler"
	resourcerepo "condohub/internal/resources/repository"
	resourceservice "condohub/internal/resources/service"
	resourcevalidator "condohub/internal/resources/validator"
	"condohub/pkg/app"
	"condohub/pkg/auth"
	"condohub/pkg/clock"
	"condohub/pkg/config"
	"condohub/pkg/notify"
	"condohub/pkg/store/mongostore"

	"github.com/joho/godotenv"
)

const ServiceName = "condohub-portal"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting condominium portal")

	st, err := mongostore.Connect(cfg.Log, mongostore.Config{
		URI:          cfg.MongoURI,
		Database:     cfg.MongoDatabaseName,
		ConnTimeout:  cfg.MongoConnTimeout,
		ReadTimeout:  cfg.MongoReadTimeout,
		WriteTimeout: cfg.MongoWriteTimeout,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	publisher, err := notify.NewKafkaPublisher(notify.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		Source:  ServiceName,
	}, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to configure Kafka publisher", "error", err)
	}

	clk := clock.Real()
	verifier := auth.NewVerifier(cfg.AuthSecret)

	bookingRepo := bookingrepo.NewBookingRepository(st)
	resourceRepo := resourcerepo.NewResourceRepository(st)
	eventRepo := eventrepo.NewEventRepository(st)
	condoRepo := condorepo.NewCondominiumRepository(st)
	newsletterRepo := newsletterrepo.NewNewsletterRepository(st)
	pollRepo := pollrepo.NewPollRepository(st)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		resourceRepo,
		eventRepo,
		condoRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		clk,
		cfg.Log,
	)
	resourceService := resourceservice.NewResourceService(
		resourceRepo,
		resourcevalidator.NewResourceValidator(cfg.Log),
		clk,
		cfg.Log,
	)
	eventService := eventservice.NewEventService(
		eventRepo,
		eventvalidator.NewEventValidator(cfg.Log),
		clk,
		cfg.Log,
	)
	condoService := condoservice.NewCondominiumService(condoRepo, cfg.Log)
	newsletterService := newsletterservice.NewNewsletterService(newsletterRepo, publisher, clk, cfg.Log)
	pollService := pollservice.NewPollService(pollRepo, clk, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(st, verifier,
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		resourcehandler.NewResourceHandler(resourceService, cfg.Log),
		eventhandler.NewEventHandler(eventService, cfg.Log),
		condohandler.NewCondominiumHandler(condoService, cfg.Log),
		newsletterhandler.NewNewsletterHandler(newsletterService, cfg.Log),
		pollhandler.NewPollHandler(pollService, cfg.Log),
	)
	serverApp.OnShutdown(func(ctx context.Context) error {
		return publisher.Close()
	})
	serverApp.OnShutdown(func(ctx context.Context) error {
		return st.Disconnect(ctx)
	})

	cfg.Log.Info("Portal services initialized", "database", cfg.MongoDatabaseName)
	serverApp.Run()
}
