package main

import (
	"flag"
	"fmt"
	"log"

	"poco-backend/config"
	"poco-backend/pkg/db"

	"gorm.io/gorm"
)

// 子表在前，按外键依赖逆序清理
var tables = []string{"messages", "friends", "users"}

func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg := config.LoadConfig()

	orm, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer func() {
		if sqlDB, err := orm.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	fmt.Println("Database connected successfully")
	fmt.Printf("Driver: %s  Database: %s\n", cfg.Database.Driver, cfg.Database.Database)

	if err := db.EnsureSchema(orm); err != nil {
		log.Fatalf("Schema check failed: %v", err)
	}

	if !*yes {
		fmt.Printf("\nWARNING: This operation will CLEAR ALL DATA in tables %v!\n", tables)
		fmt.Print("Type 'YES' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "YES" {
			fmt.Println("Operation cancelled")
			return
		}
	}

	if err := reset(orm, cfg.Database.Driver); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}

	fmt.Println("\nDatabase reset completed!")
	fmt.Println("All table data cleared, table structure preserved")
	fmt.Println("Auto-increment IDs reset to 1")
}

// reset 清空数据并重置自增ID，表结构保留
func reset(orm *gorm.DB, driver string) error {
	if driver == db.DriverPostgres {
		fmt.Print("Truncating tables... ")
		if err := orm.Exec("TRUNCATE TABLE messages, friends, users RESTART IDENTITY CASCADE").Error; err != nil {
			fmt.Println("Failed")
			return err
		}
		fmt.Println("Success")
		return nil
	}

	for _, table := range tables {
		fmt.Printf("Clearing table %s... ", table)
		if err := orm.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			fmt.Println("Failed")
			return fmt.Errorf("clear %s: %w", table, err)
		}
		fmt.Println("Success")
	}

	fmt.Println("\nResetting auto-increment IDs...")
	for _, table := range tables {
		var stmt string
		switch driver {
		case db.DriverMySQL:
			stmt = fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", table)
		case db.DriverSQLite:
			// sqlite_sequence 只在用过 AUTOINCREMENT 时存在
			if !orm.Migrator().HasTable("sqlite_sequence") {
				continue
			}
			stmt = fmt.Sprintf("DELETE FROM sqlite_sequence WHERE name = '%s'", table)
		default:
			continue
		}
		fmt.Printf("Resetting %s auto-increment... ", table)
		if err := orm.Exec(stmt).Error; err != nil {
			fmt.Printf("Failed: %v\n", err)
		} else {
			fmt.Println("Success")
		}
	}
	return nil
}
