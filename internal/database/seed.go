package database

import (
	"solarvest-backend/internal/domain"

	"gorm.io/gorm"
)

// Seed inserts the system banks and the project catalog when the tables are
// empty. Safe to call on every startup.
func Seed(db *gorm.DB) error {
	var bankCount int64
	if err := db.Model(&domain.Bank{}).Count(&bankCount).Error; err != nil {
		return err
	}
	if bankCount == 0 {
		banks := []domain.Bank{
			{Name: "Ziraat Bankasi", IBAN: "TR33 0001 0002 3456 7891 0123 45", AccountHolder: "Solarvest Enerji A.S.", IsActive: true},
			{Name: "Is Bankasi", IBAN: "TR64 0006 4000 0011 2345 6789 01", AccountHolder: "Solarvest Enerji A.S.", IsActive: true},
			{Name: "Garanti BBVA", IBAN: "TR12 0006 2000 1234 0006 2971 23", AccountHolder: "Solarvest Enerji A.S.", IsActive: true},
			{Name: "Akbank", IBAN: "TR98 0004 6000 1288 8000 1234 56", AccountHolder: "Solarvest Enerji A.S.", IsActive: true},
		}
		if err := db.Create(&banks).Error; err != nil {
			return err
		}
	}

	var projectCount int64
	if err := db.Model(&domain.Project{}).Count(&projectCount).Error; err != nil {
		return err
	}
	if projectCount == 0 {
		projects := []domain.Project{
			{Name: "Konya GES-1", Description: "Ground-mounted solar plant, phase 1", Region: "Konya", CapacityKW: 1200, Status: "active"},
			{Name: "Izmir GES-2", Description: "Rooftop solar portfolio", Region: "Izmir", CapacityKW: 800, Status: "active"},
			{Name: "Antalya GES-3", Description: "Ground-mounted solar plant with storage", Region: "Antalya", CapacityKW: 1500, Status: "active"},
		}
		if err := db.Create(&projects).Error; err != nil {
			return err
		}
	}
	return nil
}
