package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	cfg := mysqldriver.NewConfig()
	cfg.User = envOrDefault("DB_USER", "root")
	cfg.Passwd = envOrDefault("DB_PASS", "")
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%s", envOrDefault("DB_HOST", "127.0.0.1"), envOrDefault("DB_PORT", "3306"))
	cfg.DBName = envOrDefault("DB_NAME", "hostel_db")
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	return cfg.FormatDSN(), nil
}

// SeedDatabase inserts a demo hostel with a few rooms when the hostels
// table is empty, so a fresh install has something to show.
func SeedDatabase() {
	var hostelCount int64
	DB.Model(&models.Hostel{}).Count(&hostelCount)
	if hostelCount > 0 {
		log.Println("Hostels already seeded")
		return
	}

	hostel := models.Hostel{
		Name:          "Sunrise PG",
		Address:       "12 Lake Road",
		TotalFloors:   3,
		TotalRooms:    6,
		Status:        models.HostelStatusActive,
		WardenName:    "R. Sharma",
		WardenContact: "900-000-0001",
	}
	if err := DB.Create(&hostel).Error; err != nil {
		log.Printf("warning: failed to seed hostel: %v", err)
		return
	}

	rooms := []models.Room{
		{HostelID: &hostel.ID, Number: "101", Floor: "1", Building: "A", Type: "single", Capacity: "1", Price: "8000", Status: models.RoomStatusAvailable},
		{HostelID: &hostel.ID, Number: "102", Floor: "1", Building: "A", Type: "double", Capacity: "2", Price: "6000", Status: models.RoomStatusAvailable},
		{HostelID: &hostel.ID, Number: "201", Floor: "2", Building: "A", Type: "double", Capacity: "2", Price: "6000", Status: models.RoomStatusAvailable},
		{HostelID: &hostel.ID, Number: "202", Floor: "2", Building: "A", Type: "triple", Capacity: "3", Price: "5000", Status: models.RoomStatusAvailable},
		{HostelID: &hostel.ID, Number: "301", Floor: "3", Building: "A", Type: "single", Capacity: "1", Price: "8500", Status: models.RoomStatusMaintenance},
		{HostelID: &hostel.ID, Number: "302", Floor: "3", Building: "A", Type: "double", Capacity: "2", Price: "6200", Status: models.RoomStatusAvailable},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}
	log.Println("Demo hostel and rooms seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Hostel{},
		&models.Room{},
		&models.Tenant{},
		&models.RoomAllocation{},
		&models.Payment{},
		&models.Expense{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
