package service

import (
	"context"
	"encoding/json"
	"time"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"
	"pahamkode_backend/pkg/logger"
	"pahamkode_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dashboardCacheKey = "pahamkode:admin:dashboard"

// AdminService menyajikan agregat lintas mahasiswa untuk pengajar dan admin.
// Semua angka dihitung dari tabel submisi/progress saat diminta; cache Redis
// hanya mempercepat dashboard, bukan sumber kebenaran.
type AdminService struct {
	DB          *gorm.DB
	Redis       *redis.Client
	CacheTTL    time.Duration
	Submissions *repository.SubmissionRepository
	Patterns    *repository.PatternRepository
	Progress    *repository.ProgressRepository
	Users       *repository.UserRepository
	Metrics     *repository.AIMetricRepository
}

func NewAdminService(
	db *gorm.DB,
	rdb *redis.Client,
	cacheTTLSeconds int,
	submissions *repository.SubmissionRepository,
	patterns *repository.PatternRepository,
	progress *repository.ProgressRepository,
	users *repository.UserRepository,
	metrics *repository.AIMetricRepository,
) *AdminService {
	ttl := time.Duration(cacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &AdminService{
		DB:          db,
		Redis:       rdb,
		CacheTTL:    ttl,
		Submissions: submissions,
		Patterns:    patterns,
		Progress:    progress,
		Users:       users,
		Metrics:     metrics,
	}
}

type StrugglingStudent struct {
	ID          string `json:"id"`
	Nama        string `json:"nama"`
	Email       string `json:"email"`
	JumlahError int64  `json:"jumlah_error"`
}

type DashboardStatistik struct {
	TotalMahasiswa           int64                  `json:"total_mahasiswa"`
	MahasiswaBaruBulanIni    int64                  `json:"mahasiswa_baru_bulan_ini"`
	TotalAnalisis            int64                  `json:"total_analisis"`
	AnalisisHariIni          int64                  `json:"analisis_hari_ini"`
	AnalisisMingguIni        int64                  `json:"analisis_minggu_ini"`
	AnalisisBulanIni         int64                  `json:"analisis_bulan_ini"`
	RataPenguasaanGlobal     float64                `json:"rata_rata_penguasaan_global"`
	KesalahanTeratas         []repository.TypeCount `json:"kesalahan_teratas"`
	MahasiswaPalingKesulitan []StrugglingStudent    `json:"mahasiswa_paling_kesulitan"`
}

// GetDashboardStatistik menghitung ringkasan kohort. Hasil di-cache sebentar
// di Redis karena endpoint ini dipanggil berulang oleh halaman dashboard.
func (s *AdminService) GetDashboardStatistik(ctx context.Context) (*DashboardStatistik, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfWeek := mondayOf(now)

	stat := &DashboardStatistik{}

	var err error
	if stat.TotalMahasiswa, err = s.Users.CountByRole(model.RoleMahasiswa); err != nil {
		return nil, err
	}
	if stat.MahasiswaBaruBulanIni, err = s.Users.CountByRoleSince(model.RoleMahasiswa, startOfMonth); err != nil {
		return nil, err
	}
	if stat.TotalAnalisis, err = s.Submissions.CountAll(); err != nil {
		return nil, err
	}
	if stat.AnalisisHariIni, err = s.Submissions.CountSince(startOfDay); err != nil {
		return nil, err
	}
	if stat.AnalisisMingguIni, err = s.Submissions.CountSince(startOfWeek); err != nil {
		return nil, err
	}
	if stat.AnalisisBulanIni, err = s.Submissions.CountSince(startOfMonth); err != nil {
		return nil, err
	}
	if stat.RataPenguasaanGlobal, _, err = s.Progress.GlobalMeanMastery(); err != nil {
		return nil, err
	}
	if stat.KesalahanTeratas, err = s.Submissions.TopErrorTypes(5); err != nil {
		return nil, err
	}

	top, err := s.Submissions.TopStudents(5)
	if err != nil {
		return nil, err
	}
	stat.MahasiswaPalingKesulitan = make([]StrugglingStudent, 0, len(top))
	for _, t := range top {
		entry := StrugglingStudent{ID: t.StudentID, JumlahError: t.Jumlah}
		if user, uerr := s.Users.FindByID(t.StudentID); uerr == nil {
			entry.Nama = user.Nama
			entry.Email = user.Email
		}
		stat.MahasiswaPalingKesulitan = append(stat.MahasiswaPalingKesulitan, entry)
	}

	s.writeCache(ctx, stat)
	return stat, nil
}

func (s *AdminService) readCache(ctx context.Context) *DashboardStatistik {
	if s.Redis == nil {
		return nil
	}
	raw, err := s.Redis.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stat DashboardStatistik
	if err := json.Unmarshal(raw, &stat); err != nil {
		return nil
	}
	return &stat
}

func (s *AdminService) writeCache(ctx context.Context, stat *DashboardStatistik) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(stat)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, dashboardCacheKey, raw, s.CacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache dashboard statistics", zap.Error(err))
	}
}

// mondayOf mengembalikan awal hari Senin dari minggu yang memuat t.
func mondayOf(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

type GlobalPattern struct {
	JenisKesalahan      string   `json:"jenis_kesalahan"`
	TotalKemunculan     int64    `json:"total_kemunculan"`
	MahasiswaTerpegaruh int64    `json:"jumlah_mahasiswa_terpengaruh"`
	PersentaseMahasiswa float64  `json:"persentase_mahasiswa"`
	MiskonsepsiUmum     []string `json:"miskonsepsi_umum"`
}

// GetGlobalPatterns mengagregasi kesalahan lintas mahasiswa. Persentase
// dihitung terhadap seluruh mahasiswa terdaftar; nol mahasiswa berarti
// persentase nol, bukan pembagian nol.
func (s *AdminService) GetGlobalPatterns(limit int) ([]GlobalPattern, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	stats, err := s.Submissions.GlobalTypeStats(limit)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.Users.CountByRole(model.RoleMahasiswa)
	if err != nil {
		return nil, err
	}

	patterns := make([]GlobalPattern, 0, len(stats))
	for _, st := range stats {
		p := GlobalPattern{
			JenisKesalahan:      st.ErrorType,
			TotalKemunculan:     st.Total,
			MahasiswaTerpegaruh: st.Students,
		}
		if totalStudents > 0 {
			p.PersentaseMahasiswa = float64(st.Students) / float64(totalStudents) * 100
		}
		gaps, gerr := s.Submissions.DistinctConceptGaps(st.ErrorType, 3)
		if gerr != nil {
			logger.Log.Warn("failed to load concept gaps",
				zap.String("error_type", st.ErrorType),
				zap.Error(gerr))
		} else {
			p.MiskonsepsiUmum = gaps
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

type DailyTrend struct {
	Tanggal        string `json:"tanggal"`
	JumlahAnalisis int64  `json:"jumlah_analisis"`
	MahasiswaAktif int64  `json:"mahasiswa_aktif"`
}

// GetAnalyticsTrend menghitung aktivitas per hari untuk N hari terakhir,
// hari tertua dulu. Hari tanpa aktivitas tetap muncul dengan nol.
func (s *AdminService) GetAnalyticsTrend(days int) ([]DailyTrend, error) {
	if days <= 0 || days > 90 {
		days = 7
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	trend := make([]DailyTrend, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)

		count, err := s.Submissions.CountBetween(start, end)
		if err != nil {
			return nil, err
		}
		students, err := s.Submissions.DistinctStudentsBetween(start, end)
		if err != nil {
			return nil, err
		}
		trend = append(trend, DailyTrend{
			Tanggal:        start.Format(util.DateFormat),
			JumlahAnalisis: count,
			MahasiswaAktif: students,
		})
	}
	return trend, nil
}

type TopikSulit struct {
	Topik               string  `json:"topik"`
	TotalError          int64   `json:"total_error"`
	MahasiswaKesulitan  int64   `json:"jumlah_mahasiswa_kesulitan"`
	PersentaseMahasiswa float64 `json:"persentase_mahasiswa"`
	RataPenguasaan      float64 `json:"rata_rata_penguasaan"`
}

// GetTopikSulit mengurutkan topik berdasarkan akumulasi error kohort.
func (s *AdminService) GetTopikSulit(limit int) ([]TopikSulit, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	stats, err := s.Progress.TopicStats(limit)
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.Users.CountByRole(model.RoleMahasiswa)
	if err != nil {
		return nil, err
	}

	topics := make([]TopikSulit, 0, len(stats))
	for _, st := range stats {
		t := TopikSulit{
			Topik:              st.Topik,
			TotalError:         st.TotalError,
			MahasiswaKesulitan: st.Students,
			RataPenguasaan:     st.MeanMastery,
		}
		if totalStudents > 0 {
			t.PersentaseMahasiswa = float64(st.Students) / float64(totalStudents) * 100
		}
		topics = append(topics, t)
	}
	return topics, nil
}

type RekomendasiKurikulum struct {
	TopikPrioritas     []repository.TopicMean `json:"topik_prioritas"`
	TopikSudahDikuasai []repository.TopicMean `json:"topik_sudah_dikuasai"`
	KesenjanganUmum    []string               `json:"kesenjangan_umum"`
	SaranUrutan        []string               `json:"saran_urutan"`
}

// GetRekomendasiKurikulum menyusun saran pengajaran dari rata-rata
// penguasaan per topik: topik lemah naik prioritas, topik kuat bisa
// dipercepat, dan topik tersulit yang belum tertangani jadi saran urutan.
func (s *AdminService) GetRekomendasiKurikulum() (*RekomendasiKurikulum, error) {
	means, err := s.Progress.TopicMeans()
	if err != nil {
		return nil, err
	}

	rec := &RekomendasiKurikulum{
		TopikPrioritas:     []repository.TopicMean{},
		TopikSudahDikuasai: []repository.TopicMean{},
		KesenjanganUmum:    []string{},
		SaranUrutan:        []string{},
	}
	for _, m := range means {
		switch {
		case m.MeanMastery < 50 && len(rec.TopikPrioritas) < 10:
			rec.TopikPrioritas = append(rec.TopikPrioritas, m)
		case m.MeanMastery > 75 && len(rec.TopikSudahDikuasai) < 10:
			rec.TopikSudahDikuasai = append(rec.TopikSudahDikuasai, m)
		}
	}

	stats, err := s.Progress.TopicStats(10)
	if err != nil {
		return nil, err
	}
	for _, st := range stats {
		if st.MeanMastery < 60 {
			rec.KesenjanganUmum = append(rec.KesenjanganUmum, st.Topik)
		}
	}

	seen := map[string]bool{}
	for i, m := range rec.TopikPrioritas {
		if i >= 5 {
			break
		}
		rec.SaranUrutan = append(rec.SaranUrutan, m.Topik)
		seen[m.Topik] = true
	}
	added := 0
	for _, topik := range rec.KesenjanganUmum {
		if added >= 3 {
			break
		}
		if seen[topik] {
			continue
		}
		rec.SaranUrutan = append(rec.SaranUrutan, topik)
		seen[topik] = true
		added++
	}
	return rec, nil
}

// ListMahasiswa mengembalikan daftar mahasiswa untuk admin, dengan pencarian
// nama/email yang tidak peka huruf besar.
func (s *AdminService) ListMahasiswa(page, limit int, search string) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Users.FindMahasiswa(page, limit, search)
}

type MahasiswaDetail struct {
	Mahasiswa      *model.User             `json:"mahasiswa"`
	TotalAnalisis  int64                   `json:"total_analisis"`
	RataPenguasaan float64                 `json:"rata_rata_penguasaan"`
	JumlahPola     int64                   `json:"jumlah_pola"`
	AktivitasAkhir []model.ErrorSubmission `json:"aktivitas_terakhir"`
}

func (s *AdminService) DetailMahasiswa(id string) (*MahasiswaDetail, error) {
	user, err := s.Users.FindByID(id)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	detail := &MahasiswaDetail{Mahasiswa: user}
	if detail.TotalAnalisis, err = s.Submissions.CountByStudent(id); err != nil {
		return nil, err
	}
	if detail.RataPenguasaan, _, err = s.Progress.MeanMasteryByStudent(id); err != nil {
		return nil, err
	}
	if detail.JumlahPola, err = s.Patterns.CountByStudent(id); err != nil {
		return nil, err
	}
	if detail.AktivitasAkhir, err = s.Submissions.FindRecentByStudent(id, 5); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateMahasiswaStatus mengganti status akun. Hanya aktif/suspended yang sah.
func (s *AdminService) UpdateMahasiswaStatus(id string, status model.UserStatus) error {
	if status != model.StatusAktif && status != model.StatusSuspended {
		return util.ErrInvalidStatus
	}
	if _, err := s.Users.FindByID(id); err != nil {
		return util.ErrUserNotFound
	}
	return s.Users.UpdateStatus(id, status)
}

// BulkAction menjalankan aksi massal pada daftar mahasiswa.
// Aksi yang dikenal: suspend, aktifkan, hapus.
func (s *AdminService) BulkAction(ids []string, action string) (int64, error) {
	if len(ids) == 0 {
		return 0, util.ErrInvalidBulkAction
	}
	switch action {
	case "suspend":
		return s.Users.BulkUpdateStatus(ids, model.StatusSuspended)
	case "aktifkan":
		return s.Users.BulkUpdateStatus(ids, model.StatusAktif)
	case "hapus":
		return s.Users.BulkDelete(ids)
	default:
		return 0, util.ErrInvalidBulkAction
	}
}

// GetMetrikAI merangkum pemakaian layanan klasifikasi.
func (s *AdminService) GetMetrikAI() (*repository.AIMetricSummary, error) {
	return s.Metrics.Summary()
}

type SystemHealth struct {
	Status           string  `json:"status"`
	Database         string  `json:"database"`
	Redis            string  `json:"redis"`
	TotalRequests24h int     `json:"total_requests_24h"`
	AvgResponseMs    float64 `json:"api_response_time_avg"`
	ErrorRate24h     float64 `json:"error_rate_24h"`
}

// GetSystemHealth memeriksa dependensi dan melaporkan beban API 24 jam.
func (s *AdminService) GetSystemHealth(ctx context.Context) *SystemHealth {
	health := &SystemHealth{Status: "sehat", Database: "terhubung", Redis: "terhubung"}

	sqlDB, err := s.DB.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		health.Database = "terputus"
		health.Status = "terganggu"
	}

	if s.Redis == nil {
		health.Redis = "nonaktif"
	} else if err := s.Redis.Ping(ctx).Err(); err != nil {
		health.Redis = "terputus"
		health.Status = "terganggu"
	}

	snap := monitoring.Snapshot()
	health.TotalRequests24h = snap.TotalRequests
	health.AvgResponseMs = snap.AvgResponseMs
	health.ErrorRate24h = snap.ErrorRate

	return health
}
