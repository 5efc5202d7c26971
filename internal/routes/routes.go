package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/auth"
	"github.com/goofitre/carcare-api/internal/cache"
	"github.com/goofitre/carcare-api/internal/config"
	"github.com/goofitre/carcare-api/internal/db"
	storeDomain "github.com/goofitre/carcare-api/internal/domain/store"
	userDomain "github.com/goofitre/carcare-api/internal/domain/user"
	"github.com/goofitre/carcare-api/internal/handlers"
	infraRepo "github.com/goofitre/carcare-api/internal/infra/repository"
	"github.com/goofitre/carcare-api/internal/media"
	"github.com/goofitre/carcare-api/internal/middleware"
	"github.com/goofitre/carcare-api/internal/notify"
	"github.com/goofitre/carcare-api/internal/payment"
	ucAdmin "github.com/goofitre/carcare-api/internal/usecase/admin"
	ucBooking "github.com/goofitre/carcare-api/internal/usecase/booking"
	ucReview "github.com/goofitre/carcare-api/internal/usecase/review"
	ucService "github.com/goofitre/carcare-api/internal/usecase/service"
	ucStore "github.com/goofitre/carcare-api/internal/usecase/store"
	ucUser "github.com/goofitre/carcare-api/internal/usecase/user"
	"github.com/goofitre/carcare-api/internal/validators"
)

// Deps are the process-wide singletons built in main, which also owns
// their shutdown.
type Deps struct {
	DB     *db.Database
	Config *config.Config

	Tokens   *auth.Tokens
	Audit    *audit.Dispatcher
	AuditLog *audit.Logger
	Cache    cache.StoreCache
	Notifier notify.Notifier
	Uploader media.Uploader
	Gateway  payment.Gateway
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	gdb := d.DB.Gorm()

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	storeRepo := infraRepo.NewStoreGormRepository(gdb)
	serviceRepo := infraRepo.NewServiceGormRepository(gdb)
	reviewRepo := infraRepo.NewReviewGormRepository(gdb)
	bookingRepo := infraRepo.NewBookingGormRepository(gdb)
	userRepo := infraRepo.NewUserGormRepository(gdb)

	searcher := storeDomain.NewReader(
		infraRepo.NewStorePlainSearch(gdb),
		infraRepo.NewStoreGeoSearch(d.DB.SQLX()),
	)

	// ======================================================
	// USE CASES
	// ======================================================
	accounts := ucUser.NewAccounts(
		userRepo,
		storeRepo,
		d.Tokens,
		d.Cache,
		d.Audit,
		ucUser.Options{CheckEmailDomain: cfg.CheckEmailDomain},
		validators.IsEmailDomainValid,
	)

	storeDetail := ucStore.NewGetStoreDetail(storeRepo, d.Cache)
	ownStore := ucStore.NewGetOwnStore(storeRepo)
	listStores := ucStore.NewListStores(storeRepo)
	createStore := ucStore.NewCreateStore(storeRepo, d.Cache, d.Audit)
	updateStore := ucStore.NewUpdateStore(storeRepo, d.Cache, d.Audit)
	deleteStore := ucStore.NewDeleteStore(storeRepo, d.Cache, d.Audit)
	setStoreOpen := ucStore.NewSetStoreOpen(storeRepo, d.Cache, d.Audit)
	uploadImage := ucStore.NewUploadStoreImage(storeRepo, d.Uploader, d.Cache, d.Audit)

	catalog := ucService.NewCatalog(storeRepo, serviceRepo, d.Cache, d.Audit)

	listReviews := ucReview.NewListReviews(reviewRepo)
	addReview := ucReview.NewAddReview(reviewRepo, d.Cache, d.Audit)

	createBooking := ucBooking.NewCreateBooking(
		storeRepo,
		serviceRepo,
		bookingRepo,
		d.Gateway,
		d.Notifier,
		d.Cache,
		d.Audit,
		ucBooking.Options{Timezone: cfg.StoreTimezone, Currency: cfg.Currency},
	)
	getBooking := ucBooking.NewGetBooking(bookingRepo)
	storeBookings := ucBooking.NewStoreBookings(storeRepo, bookingRepo, d.Audit)

	dashboard := ucAdmin.NewDashboard(userRepo, storeRepo, bookingRepo, cfg.StoreTimezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accounts)

	publicHandler := handlers.NewPublicHandler(
		searcher,
		storeDetail,
		listReviews,
		addReview,
		createBooking,
		getBooking,
	)

	organizaHandler := handlers.NewOrganizaHandler(
		ownStore,
		createStore,
		updateStore,
		deleteStore,
		uploadImage,
		catalog,
		storeBookings,
	)

	adminHandler := handlers.NewAdminHandler(
		accounts,
		listStores,
		setStoreOpen,
		deleteStore,
		dashboard,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, cfg.StoreTimezone)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/stores", publicHandler.Search)
		api.GET("/stores/:id", publicHandler.Detail)
		api.GET("/stores/:id/reviews", publicHandler.ListReviews)
		api.POST("/stores/:id/reviews", publicHandler.AddReview)
		api.POST("/stores/:id/bookings", publicHandler.CreateBooking)
		api.GET("/bookings/:id", publicHandler.GetBooking)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))
		{
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// STORE OWNER
			// ------------------------------
			organiza := secured.Group("/organiza")
			organiza.Use(middleware.RequireRoles(userDomain.RoleOrganiza, userDomain.RoleAdmin))
			{
				organiza.GET("/store", organizaHandler.GetStore)
				organiza.POST("/store", organizaHandler.CreateStore)
				organiza.PUT("/store/:id", organizaHandler.UpdateStore)
				organiza.DELETE("/store/:id", organizaHandler.DeleteStore)
				organiza.POST("/store/:id/image", organizaHandler.UploadImage)

				organiza.GET("/services", organizaHandler.ListServices)
				organiza.POST("/services", organizaHandler.CreateService)
				organiza.PUT("/services/:id", organizaHandler.UpdateService)
				organiza.DELETE("/services/:id", organizaHandler.DeleteService)

				organiza.GET("/bookings", organizaHandler.ListBookings)
				organiza.PATCH("/bookings/:id/status", organizaHandler.UpdateBookingStatus)
				organiza.GET("/dashboard", organizaHandler.Dashboard)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(userDomain.RoleAdmin))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/users", adminHandler.CreateUser)
				admin.PATCH("/users/:id/role", adminHandler.ChangeRole)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)

				admin.GET("/stores", adminHandler.ListStores)
				admin.PATCH("/stores/:id/open", adminHandler.SetStoreOpen)
				admin.DELETE("/stores/:id", adminHandler.DeleteStore)

				admin.GET("/dashboard", adminHandler.Dashboard)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
