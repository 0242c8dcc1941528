package utils

import (
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

var commonFirstNames = []string{
	"Agus", "Budi", "Citra", "Dewi", "Eko", "Fajar", "Gita", "Hadi",
	"Indah", "Joko", "Kartika", "Lestari", "Mega", "Nanda", "Putri",
	"Rizky", "Sari", "Tono", "Utami", "Wahyu",
}

var commonLastNames = []string{
	"Pratama", "Saputra", "Wijaya", "Santoso", "Hidayat", "Nugraha",
	"Ramadhan", "Setiawan", "Kusuma", "Permata", "Anggraini", "Maulana",
}

func GenerateRandomIndonesianName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

func GenerateEmailFromName(name string, emailDomainName string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	digits := "0123456789"
	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}
	return local + "@" + emailDomainName
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	nama := GenerateRandomIndonesianName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        GenerateEmailFromName(nama, emailDomainName),
		Nama:         nama,
		PasswordHash: string(passwordHash),
		Role:         domain.RoleAdmin,
	}

	return user, nil
}

var sampleAspirasi = []string{
	"Tolong perbanyak kegiatan pelatihan untuk mahasiswa baru",
	"Fasilitas lab komputer perlu diperbarui",
	"Semoga kajian rutin bisa diadakan setiap minggu",
	"Mohon informasi lomba dibagikan lebih awal",
	"Kantin dekat gedung prodi terlalu sempit",
	"Ingin ada mentoring untuk persiapan magang",
	"Jadwal responsi sering bentrok dengan kelas lain",
	"Terima kasih atas kerja keras pengurus himpunan",
	"Perlu wadah untuk menyalurkan minat riset mahasiswa",
	"Tolong adakan studi banding ke kampus lain",
}

var kategoriList = []domain.Kategori{
	domain.KategoriProdi,
	domain.KategoriHima,
}

func GenerateRandomKategori() domain.Kategori {
	return kategoriList[rand.Intn(len(kategoriList))]
}

// GenerateRandomAspirasi membuat aspirasi contoh; kira-kira sepertiga dari
// hasilnya anonim, meniru komposisi kiriman asli.
func GenerateRandomAspirasi() *domain.Aspirasi {
	a := &domain.Aspirasi{
		Aspirasi:  sampleAspirasi[rand.Intn(len(sampleAspirasi))],
		CreatedAt: time.Now().UTC().Add(-time.Duration(rand.Intn(24*30)) * time.Hour),
	}

	if rand.Intn(3) != 0 {
		penulis := GenerateRandomIndonesianName()
		a.Penulis = &penulis
	}
	if rand.Intn(2) == 0 {
		kategori := GenerateRandomKategori()
		a.Kategori = &kategori
	}

	return a
}
