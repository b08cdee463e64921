package database

import (
	database "gitlab.com/aoterocom/AOOptionsTicket/database/models"
	"gitlab.com/aoterocom/AOOptionsTicket/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBService struct {
	DB *gorm.DB
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) (*DBService, error) {
	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
	return NewDBServiceWithDialector(mysql.Open(dsn))
}

func NewDBServiceWithDialector(dialector gorm.Dialector) (*DBService, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}

	dbs := &DBService{
		DB: db,
	}

	err = dbs.DB.AutoMigrate(&database.Quote{}, &database.FillOrder{})
	if err != nil {
		return nil, err
	}

	return dbs, nil
}

// RecordQuote stores a quote with the orders of its plan and returns the row id
func (dbs *DBService) RecordQuote(quote models.Quote) (uint, error) {
	dbQuote := toDBQuote(quote)
	if err := dbs.DB.Create(&dbQuote).Error; err != nil {
		return 0, err
	}
	return dbQuote.ID, nil
}

// RecentQuotes returns the last limit quotes, newest first
func (dbs *DBService) RecentQuotes(limit int) ([]models.Quote, error) {
	var dbQuotes []database.Quote
	err := dbs.DB.Preload("Orders", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("id desc").Limit(limit).Find(&dbQuotes).Error
	if err != nil {
		return nil, err
	}

	quotes := make([]models.Quote, 0, len(dbQuotes))
	for _, dbQuote := range dbQuotes {
		quote, err := fromDBQuote(dbQuote)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
