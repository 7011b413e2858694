package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeevanprakash/donatex/config"
	"github.com/jeevanprakash/donatex/db"
	"github.com/jeevanprakash/donatex/mailingservices"
	"github.com/jeevanprakash/donatex/services"
)

type Server struct {
	Config                 *config.Config
	Mail                   *mailingservices.Mailgun
	AuthRepository         db.AuthRepository
	DonationRepository     db.DonationRepository
	DonationPostRepository db.DonationPostRepository
	RewardRepository       db.RewardRepository
	DonationService        services.DonationService
	RewardService          services.RewardService
	BillService            services.BillService
	MediaService           services.MediaService
	DB                     db.GormDB
}

// Start brings the router up and blocks until shutdown.
func (s *Server) Start() {
	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	r := s.setupRouter()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited")
}
