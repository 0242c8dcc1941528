package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	id_locale "github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	id_translations "github.com/go-playground/validator/v10/translations/id"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/config"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/storage"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/token"
)

// Store adalah operasi penyimpanan yang dibutuhkan handler, dipenuhi oleh
// *repository.Repository. Dibuat interface supaya test bisa menyuntikkan
// store in-memory.
type Store interface {
	CreateUser(user *domain.User) error
	GetUserByID(id int64) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	GetAllUsersExcept(id int64) ([]*domain.User, error)
	CountUsers() (int64, error)
	DeleteUser(id int64) (int64, error)
	UpdateUserNama(id int64, nama string) (int64, error)
	UpdateUserPassword(id int64, passwordHash string) (int64, error)
	PromoteToSuperadmin(targetID int64, callerID int64) error

	InsertAspirasi(a *domain.Aspirasi) error
	GetAspirasiByID(id int64) (*domain.Aspirasi, error)
	GetAllAspirasi(filter domain.ListFilter) ([]*domain.Aspirasi, int64, error)
	DeleteAspirasi(id int64) (int64, error)

	InsertDisplayAspirasi(d *domain.DisplayAspirasi) error
	GetDisplayAspirasiByID(id int64) (*domain.DisplayAspirasi, error)
	GetDisplayAspirasiIlustrasi(id int64) (*string, error)
	GetAllDisplayAspirasi(filter domain.ListFilter) ([]*domain.DisplayAspirasi, int64, error)
	GetDisplayedAspirasi() ([]*domain.DisplayAspirasi, error)
	UpdateDisplayAspirasiStatus(id int64, status domain.DisplayStatus) (int64, error)
	UpdateDisplayAspirasiKategori(id int64, kategori domain.Kategori) (int64, error)
	UpdateDisplayAspirasiText(id int64, aspirasi string, ilustrasi *string) (int64, error)
	UpdateDisplayAspirasiIlustrasi(id int64, ilustrasi string) (int64, error)
	DeleteDisplayAspirasi(id int64) (int64, error)
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	store      Store
	blob       storage.Storage
	tokens     *token.Service
	translator ut.Translator
	rateLimit  func(next http.Handler) http.Handler

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store Store, blob storage.Storage, rdb *redis.Client) (*Handler, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		validate:   validate,
		config:     cfg,
		store:      store,
		blob:       blob,
		tokens:     token.NewService(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Second, time.Duration(cfg.JWT.RenewWindow)*time.Second),
		translator: trans,

		Mux: chi.NewRouter(),
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit.Public)
	if err != nil {
		return nil, err
	}
	limiterStore, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix: "ratelimit_aspirasi",
	})
	if err != nil {
		return nil, err
	}
	h.rateLimit = mhttp.NewMiddleware(
		limiter.New(limiterStore, rate, limiter.WithTrustForwardHeader(true)),
		mhttp.WithLimitReachedHandler(h.limitReached),
	).Handler

	return h, nil
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	id := id_locale.New()
	uni := ut.New(id, id)
	trans, _ := uni.GetTranslator("id")
	if err := id_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, err
	}
	return validate, trans, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// endpoint publik
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Post("/auth/init-superadmin", h.InitSuperadmin)
		r.Post("/auth/login", h.Login)
		r.Post("/aspirasi", h.CreateAspirasi)
	})
	h.Mux.Get("/landing", h.GetLanding)

	// endpoint berikut hanya boleh dipanggil setelah login
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/aspirasi", func(r chi.Router) {
			r.Get("/", h.GetAllAspirasi)
			r.Get("/{id}", h.GetAspirasi)
			r.Delete("/{id}", h.DeleteAspirasi)
		})

		r.Route("/display-aspirasi", func(r chi.Router) {
			r.Get("/", h.GetAllDisplayAspirasi)
			r.Post("/", h.CreateDisplayAspirasi)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", h.UpdateDisplayAspirasiText)
				r.Patch("/status", h.UpdateDisplayAspirasiStatus)
				r.Patch("/kategori", h.UpdateDisplayAspirasiKategori)
				r.Put("/ilustrasi", h.ReplaceDisplayAspirasiIlustrasi)
				r.Delete("/", h.DeleteDisplayAspirasi)
			})
		})

		r.Route("/profil", func(r chi.Router) {
			r.Get("/", h.GetProfil)
			r.Patch("/nama", h.UpdateProfilNama)
			r.Patch("/password", h.UpdateProfilPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.requireSuperadmin)
			r.Get("/", h.GetAllUsers)
			r.Post("/", h.RegisterUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Delete("/", h.DeleteUser)
				r.Post("/promote", h.PromoteUser)
			})
		})
	})
}
