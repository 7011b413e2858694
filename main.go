package main

import (
	"log"

	"github.com/jeevanprakash/donatex/config"
	"github.com/jeevanprakash/donatex/db"
	"github.com/jeevanprakash/donatex/mailingservices"
	"github.com/jeevanprakash/donatex/server"
	"github.com/jeevanprakash/donatex/services"
	"github.com/redis/go-redis/v9"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize Mailgun client
	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)

	var redisClient *redis.Client
	if conf.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: conf.RedisAddr})
	} else {
		log.Println("redis_addr not set, action type cache disabled")
	}

	authRepo := db.NewAuthRepo(gormDB)
	donationRepo := db.NewDonationRepo(gormDB)
	donationPostRepo := db.NewDonationPostRepo(gormDB)
	rewardRepo := db.NewRewardRepo(gormDB)

	rewardService := services.NewRewardService(rewardRepo, redisClient, conf)
	billService := services.NewBillService()
	mediaService := services.NewMediaService(conf)
	donationService := services.NewDonationService(donationRepo, donationPostRepo, rewardService, billService, mediaService, mailgunClient, conf)

	s := &server.Server{
		Mail:                   mailgunClient,
		Config:                 conf,
		AuthRepository:         authRepo,
		DonationRepository:     donationRepo,
		DonationPostRepository: donationPostRepo,
		RewardRepository:       rewardRepo,
		DonationService:        donationService,
		RewardService:          rewardService,
		BillService:            billService,
		MediaService:           mediaService,
		DB:                     *gormDB,
	}

	s.Start()
}
