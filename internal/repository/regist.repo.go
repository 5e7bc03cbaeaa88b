package repository

import (
	orderRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/order"
	preferenceRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/preference"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Order      orderRepo.IRepository
	Preference preferenceRepo.IRepository
}
