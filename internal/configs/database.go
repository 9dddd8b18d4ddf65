package config

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "donext/internal/models"
)

// New opens the database and migrates the task and chat tables. The
// session table is owned by the auth service and is never migrated
// here.
func New(driver, dsn string) *gorm.DB {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		log.Fatalf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if driver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("db handle failed: %v", err)
		}
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(3)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(30 * time.Second)
	}

	if err := db.AutoMigrate(&model.Task{}, &model.Conversation{}, &model.Message{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
