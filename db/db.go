package db

import (
	"fmt"
	"log"

	"github.com/jeevanprakash/donatex/config"
	"github.com/jeevanprakash/donatex/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d TimeZone=Asia/Kolkata",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

// SeedPointsActionTypes makes sure the reference actions the accrual flow
// looks up by name exist. Point values can be retuned in the table later.
func SeedPointsActionTypes(db *gorm.DB) error {
	actions := []models.PointsActionType{
		{ActionType: models.ActionDonate, DefaultPoints: 10},
		{ActionType: "Purchase", DefaultPoints: 5},
		{ActionType: "Referral", DefaultPoints: 20},
	}

	for _, action := range actions {
		if err := db.FirstOrCreate(&action, models.PointsActionType{ActionType: action.ActionType}).Error; err != nil {
			return err
		}
	}

	return nil
}

func intPtr(i int) *int {
	return &i
}

func SeedPointsBadges(db *gorm.DB) error {
	badges := []models.PointsBadge{
		{Name: "Bronze", MinPoints: 0, MaxPoints: intPtr(99), Description: "Getting started"},
		{Name: "Silver", MinPoints: 100, MaxPoints: intPtr(499), Description: "Regular contributor"},
		{Name: "Gold", MinPoints: 500, MaxPoints: intPtr(1999), Description: "Committed supporter"},
		{Name: "Platinum", MinPoints: 2000, Description: "Top-tier donor"},
	}

	for _, badge := range badges {
		if err := db.FirstOrCreate(&badge, models.PointsBadge{Name: badge.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func SeedDonationTypes(db *gorm.DB) error {
	types := []models.DonationType{
		{Name: "Medical Aid", IsActive: true},
		{Name: "Education", IsActive: true},
		{Name: "Disaster Relief", IsActive: true},
		{Name: "Animal Welfare", IsActive: true},
	}

	for _, donationType := range types {
		if err := db.FirstOrCreate(&donationType, models.DonationType{Name: donationType.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.DonationType{},
		&models.DonationPost{},
		&models.Donation{},
		&models.PointsActionType{},
		&models.RewardHistory{},
		&models.PointsBadge{},
	)

	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedPointsActionTypes(db); err != nil {
		return fmt.Errorf("seeding points action types error: %v", err)
	}

	if err := SeedPointsBadges(db); err != nil {
		return fmt.Errorf("seeding points badges error: %v", err)
	}

	if err := SeedDonationTypes(db); err != nil {
		return fmt.Errorf("seeding donation types error: %v", err)
	}

	return nil
}
