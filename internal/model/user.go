package model

import "time"

type UserRole string

const (
	RoleMahasiswa UserRole = "mahasiswa"
	RolePengajar  UserRole = "pengajar"
	RoleAdmin     UserRole = "admin"
)

type UserStatus string

const (
	StatusAktif     UserStatus = "aktif"
	StatusSuspended UserStatus = "suspended"
)

// Tingkat kemahiran mahasiswa, dipakai sebagai konteks klasifikasi.
const (
	KemahiranPemula   = "pemula"
	KemahiranMenengah = "menengah"
	KemahiranMahir    = "mahir"
)

// swagger:model User
type User struct {
	UUIDBase
	Email            string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"size:100;not null" json:"-"`
	Nama             string     `gorm:"size:100" json:"nama"`
	Role             UserRole   `gorm:"size:20;default:'mahasiswa';index" json:"role"`
	TingkatKemahiran string     `gorm:"size:20;default:'pemula'" json:"tingkat_kemahiran"`
	Status           UserStatus `gorm:"size:20;default:'aktif'" json:"status"`
	LastLogin        time.Time  `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}
