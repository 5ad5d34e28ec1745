package util

import "errors"

var (
	ErrUserNotFound         = errors.New("mahasiswa tidak ditemukan")
	ErrEmailRegistered      = errors.New("email sudah terdaftar")
	ErrInvalidCredentials   = errors.New("email atau password salah")
	ErrAccountSuspended     = errors.New("akun sedang disuspend")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrClassificationFailed = errors.New("klasifikasi error gagal")
	ErrPatternNotFound      = errors.New("pola kesalahan tidak ditemukan")
	ErrExerciseNotFound     = errors.New("exercise tidak ditemukan")
	ErrResourceNotFound     = errors.New("sumber daya tidak ditemukan")
	ErrSubmissionNotFound   = errors.New("submisi tidak ditemukan")
	ErrInvalidStatus        = errors.New("status harus 'aktif' atau 'suspended'")
	ErrInvalidBulkAction    = errors.New("action harus 'suspend', 'aktifkan', atau 'hapus'")
)
