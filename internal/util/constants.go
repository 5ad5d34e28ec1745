package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// Periode untuk filter riwayat dan export laporan.
const (
	PeriodeMingguIni = "minggu_ini"
	PeriodeBulanIni  = "bulan_ini"
	PeriodeSemua     = "semua"
)
