package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/billiard-club-app/models"
	"github.com/yeremiapane/billiard-club-app/utils"
	"gorm.io/gorm"
)

// OpenTimeLabel adalah sentinel untuk sesi walk-in tanpa batas waktu.
const OpenTimeLabel = "Open Time"

// MinOpenTimeHeadroom -> open time ditolak jika reservasi berikutnya
// dimulai kurang dari satu jam lagi.
const MinOpenTimeHeadroom = time.Hour

// OpeningHour -> reservasi hanya boleh mulai jam 07:00 ke atas.
const OpeningHour = 7

// SchedulerService memegang seluruh keputusan scheduling: admisi walk-in,
// validasi booking, dan lifecycle meja. Semua validasi berjalan sebelum
// mutasi apa pun; kalau ada error, state tidak berubah.
type SchedulerService struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewSchedulerService(db *gorm.DB) *SchedulerService {
	return &SchedulerService{DB: db, Clock: utils.RealClock{}}
}

// OpenTimePreview -> info untuk warning sebelum konfirmasi open time.
type OpenTimePreview struct {
	NextReservation   *models.Reservation `json:"next_reservation"`
	AvailableDuration string              `json:"available_duration"`
}

// ---------------------------------------------------------------
//                          TABLES
// ---------------------------------------------------------------

func (s *SchedulerService) ListTables() ([]models.Table, error) {
	var tables []models.Table
	if err := s.DB.Order("id asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *SchedulerService) GetTable(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *SchedulerService) AddTable(name string) (*models.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTableName
	}

	var count int64
	if err := s.DB.Model(&models.Table{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTableNameTaken
	}

	table := models.Table{
		Name:   name,
		Status: models.TableStatusAvailable,
	}
	if err := s.DB.Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// RenameTable mengganti nama meja dan meng-update semua reservasi yang masih
// mengacu ke nama lama, dalam satu transaksi.
func (s *SchedulerService) RenameTable(id uint, newName string) (*models.Table, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrEmptyTableName
	}

	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Table{}).
		Where("name = ? AND id <> ?", newName, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTableNameTaken
	}

	oldName := table.Name
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Table{}).
			Where("id = ?", id).
			Update("name", newName).Error; err != nil {
			return err
		}
		return tx.Model(&models.Reservation{}).
			Where("table_name = ?", oldName).
			Update("table_name", newName).Error
	})
	if err != nil {
		return nil, err
	}

	table.Name = newName
	return &table, nil
}

// DeleteTable menolak penghapusan kalau meja sedang Occupied atau masih
// punya reservasi yang mengacu ke namanya.
func (s *SchedulerService) DeleteTable(id uint) error {
	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		return err
	}

	if table.IsOccupied() {
		return ErrTableInUse
	}

	var count int64
	if err := s.DB.Model(&models.Reservation{}).
		Where("table_name = ?", table.Name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrTableInUse
	}

	return s.DB.Delete(&table).Error
}

// ResetTable -> override manual operator, selalu diizinkan.
func (s *SchedulerService) ResetTable(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		return nil, err
	}

	table.Status = models.TableStatusAvailable
	table.OccupiedUntil = nil
	if err := s.DB.Model(&table).
		Updates(map[string]interface{}{
			"status":         models.TableStatusAvailable,
			"occupied_until": nil,
		}).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ---------------------------------------------------------------
//                       RESERVATIONS
// ---------------------------------------------------------------

// ListReservations mengembalikan seluruh reservasi terurut naik berdasarkan
// (raw_date, raw_time). Format string YYYY-MM-DD / HH:MM sengaja dipilih
// supaya urutan leksikal = urutan kronologis.
func (s *SchedulerService) ListReservations() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.Order("raw_date asc, raw_time asc, id asc").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// RequestReservation memvalidasi lalu menyimpan reservasi baru.
// Batas atas 23:59 tidak divalidasi ulang di sini; hanya input widget
// yang menjaganya. Double-booking pada slot yang sama juga tidak ditolak.
func (s *SchedulerService) RequestReservation(tableID uint, guestName, date, timeStr string) (*models.Reservation, error) {
	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return nil, err
	}

	if strings.TrimSpace(guestName) == "" {
		return nil, ErrMissingGuestName
	}
	if date == "" || timeStr == "" {
		return nil, ErrMissingDateOrTime
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	hour, _, err := utils.ParseClockTime(timeStr)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if hour < OpeningHour {
		return nil, ErrOutsideAllowedWindow
	}

	// ID diturunkan dari wall clock asli, bukan Clock, supaya tetap unik
	// saat test memakai fixed clock.
	reservation := models.Reservation{
		ID:          strconv.FormatInt(time.Now().UnixNano(), 10),
		TableName:   table.Name,
		GuestName:   guestName,
		RawDate:     date,
		RawTime:     timeStr,
		DisplayDate: parsedDate.Format("1/2/2006"),
		DisplayTime: utils.To12Hour(timeStr),
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation menghapus reservasi; id yang tidak ada bukan error.
func (s *SchedulerService) CancelReservation(id string) error {
	return s.DB.Where("id = ?", id).Delete(&models.Reservation{}).Error
}

// NextTodayReservation mencari reservasi terdekat HARI INI untuk sebuah meja
// yang mulainya masih di depan now. Ini satu-satunya sumber kebenaran untuk
// "reservasi berikutnya", dipakai oleh validasi walk-in maupun preview.
func (s *SchedulerService) NextTodayReservation(tableName string, now time.Time) (*models.Reservation, time.Time, error) {
	var reservations []models.Reservation
	if err := s.DB.
		Where("table_name = ? AND raw_date = ?", tableName, now.Format("2006-01-02")).
		Order("raw_time asc, id asc").
		Find(&reservations).Error; err != nil {
		return nil, time.Time{}, err
	}

	for i := range reservations {
		start, ok := reservationStartAt(now, reservations[i].RawTime)
		if !ok {
			continue
		}
		if start.After(now) {
			return &reservations[i], start, nil
		}
	}
	return nil, time.Time{}, nil
}

// ---------------------------------------------------------------
//                         WALK-INS
// ---------------------------------------------------------------

// RequestWalkIn memutuskan admit/reject untuk sesi walk-in lalu menandai
// meja Occupied dengan label akhir sesinya. "now" diambil sekali di sini dan
// dipakai untuk seluruh perhitungan operasi ini.
func (s *SchedulerService) RequestWalkIn(tableID uint, durationHours float64, openTime bool) (*models.Table, error) {
	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return nil, err
	}
	if table.IsOccupied() {
		return nil, ErrTableOccupied
	}

	now := s.Clock.Now()

	var label string
	var err error
	if openTime {
		label, err = s.openTimeLabel(table.Name, now)
	} else {
		label, err = s.fixedWalkInLabel(table.Name, durationHours, now)
	}
	if err != nil {
		return nil, err
	}

	table.Status = models.TableStatusOccupied
	table.OccupiedUntil = &label
	if err := s.DB.Model(&table).
		Updates(map[string]interface{}{
			"status":         models.TableStatusOccupied,
			"occupied_until": label,
		}).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// openTimeLabel -> open time dibatasi implisit oleh reservasi berikutnya
// hari ini: kalau ada, labelnya jam reservasi itu; kalau tidak, "Open Time".
func (s *SchedulerService) openTimeLabel(tableName string, now time.Time) (string, error) {
	next, start, err := s.NextTodayReservation(tableName, now)
	if err != nil {
		return "", err
	}
	if next == nil {
		return OpenTimeLabel, nil
	}

	headroom := start.Sub(now)
	if headroom < MinOpenTimeHeadroom {
		return "", &OpenTimeTooSoonError{
			Headroom:      utils.FormatDuration(headroom),
			ReservationAt: utils.To12Hour(next.RawTime),
		}
	}
	return utils.To12Hour(next.RawTime), nil
}

// fixedWalkInLabel men-scan reservasi hari ini (urut naik by jam) dan
// menolak pada konflik PERTAMA: reservasi di masa depan yang mulainya
// sebelum akhir walk-in. Batas persis end == start bukan konflik.
func (s *SchedulerService) fixedWalkInLabel(tableName string, durationHours float64, now time.Time) (string, error) {
	end := now.Add(time.Duration(durationHours * float64(time.Hour)))

	var reservations []models.Reservation
	if err := s.DB.
		Where("table_name = ? AND raw_date = ?", tableName, now.Format("2006-01-02")).
		Order("raw_time asc, id asc").
		Find(&reservations).Error; err != nil {
		return "", err
	}

	for _, res := range reservations {
		start, ok := reservationStartAt(now, res.RawTime)
		if !ok {
			continue
		}
		if start.After(now) && end.After(start) {
			return "", &WalkInConflictError{
				Headroom:      utils.FormatDuration(start.Sub(now)),
				ReservationAt: utils.To12Hour(res.RawTime),
			}
		}
	}
	return end.Format("3:04 PM"), nil
}

// PreviewOpenTime -> data read-only untuk warning di UI sebelum open time
// dikonfirmasi. Memakai lookup yang sama dengan validasi supaya konsisten.
func (s *SchedulerService) PreviewOpenTime(tableID uint) (*OpenTimePreview, error) {
	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	next, start, err := s.NextTodayReservation(table.Name, now)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, nil
	}
	return &OpenTimePreview{
		NextReservation:   next,
		AvailableDuration: utils.FormatDuration(start.Sub(now)),
	}, nil
}

// ---------------------------------------------------------------
//                          DASHBOARD
// ---------------------------------------------------------------

// DashboardStats -> ringkasan untuk broadcast ke dashboard.
func (s *SchedulerService) DashboardStats() map[string]interface{} {
	var availableCount, occupiedCount, upcomingCount int64

	s.DB.Model(&models.Table{}).Where("status = ?", models.TableStatusAvailable).Count(&availableCount)
	s.DB.Model(&models.Table{}).Where("status = ?", models.TableStatusOccupied).Count(&occupiedCount)
	s.DB.Model(&models.Reservation{}).
		Where("raw_date >= ?", s.Clock.Now().Format("2006-01-02")).
		Count(&upcomingCount)

	return map[string]interface{}{
		"available": availableCount,
		"occupied":  occupiedCount,
		"total":     availableCount + occupiedCount,
		"upcoming":  upcomingCount,
	}
}

// reservationStartAt menempatkan "HH:MM" pada tanggal kalender now.
func reservationStartAt(now time.Time, rawTime string) (time.Time, bool) {
	hour, minute, err := utils.ParseClockTime(rawTime)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), true
}
