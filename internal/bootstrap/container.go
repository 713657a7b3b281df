package bootstrap

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/controller"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/memory"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/internal/service"
	"pharaohvault-be/pkg/admin/dashboard"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/admin/review"
	"pharaohvault-be/pkg/admin/subscription"
	"pharaohvault-be/pkg/admin/user"
	"pharaohvault-be/pkg/payment"
	"pharaohvault-be/pkg/quote"

	pktNats "pharaohvault-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	UserController         controller.IUserController
	CheckoutController     controller.ICheckoutController
	SubscriptionController controller.ISubscriptionController
	RequestController      controller.IRequestController
	OrderController        controller.IOrderController
	MetalPriceController   controller.IMetalPriceController
	AdminController        controller.IAdminController

	// Background services, started by cmd/rest
	ConsumerService  service.IConsumerService
	ReconcileService service.IReconcileService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	eventPublisher := adminEvents.NewBusPublisher(pubSub, cfg.App.EventTopic, sysLogger)

	var closers []func()

	// NATS is optional; without it events only reach the audit log.
	var relay service.EventRelay
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		relay = natsPub
		closers = append(closers, natsPub.Close)
	}
	auditLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "events.log"))
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventTopic, relay, auditLogger)
	closers = append(closers,
		func() { _ = pubSub.Close() },
		func() { _ = auditLogger.Sync() },
	)

	// 3. Sessions
	sessionStore, closeStore := newSessionStore(cfg.App.RedisURL)
	if closeStore != nil {
		closers = append(closers, closeStore)
	}
	sessions := session.NewManager(sessionStore, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth := serverutils.SessionMiddleware(sessions, cfg.Auth.CookieName)

	// 4. Upstreams
	gateway := newGateway(cfg)
	log.Printf("[INFO] Using payment provider: %s (%s)", gateway.Name(), gateway.Mode())

	quoteClient := quote.NewGoldAPIClient(cfg.Prices.GoldAPIBaseURL, cfg.Prices.GoldAPIKey, cfg.Prices.RequestTimeout)

	// 5. Services
	priceService := service.NewMetalPriceService(uowFactory, quoteClient, cfg.Prices.CacheTTL, sysLogger)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	authService := service.NewAuthService(uowFactory, sessions, sysLogger)
	userService := service.NewUserService(uowFactory, dashboardAggregator)
	checkoutService := service.NewCheckoutService(uowFactory, gateway, cfg.Investment, eventPublisher, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, priceService, cfg.Investment, eventPublisher, sysLogger)
	requestService := service.NewRequestService(
		uowFactory,
		priceService,
		review.NewProcessor(sysLogger, eventPublisher),
		eventPublisher,
		sysLogger,
	)
	orderService := service.NewOrderService(uowFactory, cfg.Poll, sysLogger)
	reconcileService := service.NewReconcileService(uowFactory, eventPublisher, sysLogger)

	// Admin domain components
	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		priceService,
		user.NewManager(sysLogger),
		subscription.NewManager(sysLogger),
		dashboardAggregator,
		reconcileService,
		sessions,
		cfg.Reconcile.PendingTTL,
	)

	// 6. Controllers
	cookie := controller.CookieSettings{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.App.Environment == "production",
	}

	return &Container{
		AuthController:         controller.NewAuthController(authService, auth, cookie),
		UserController:         controller.NewUserController(userService, auth),
		CheckoutController:     controller.NewCheckoutController(checkoutService, auth),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService, orderService, auth),
		RequestController:      controller.NewRequestController(requestService, auth),
		OrderController:        controller.NewOrderController(orderService, auth),
		MetalPriceController:   controller.NewMetalPriceController(priceService, auth),
		AdminController:        controller.NewAdminController(adminService, auth),

		ConsumerService:  consumerService,
		ReconcileService: reconcileService,
		Logger:           sysLogger,

		closers: closers,
	}
}

// Close releases broker and cache connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// newSessionStore prefers Redis and falls back to process memory when it is unreachable.
func newSessionStore(url string) (session.Store, func()) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Sessions are kept in memory", err)
		_ = rdb.Close()
		return memory.NewSessionRepository(), nil
	}

	return session.NewRedisStore(rdb), func() { _ = rdb.Close() }
}

func newGateway(cfg *config.Config) payment.Gateway {
	switch cfg.Payment.Provider {
	case "midtrans":
		return payment.NewMidtransGateway(cfg.Payment.MidtransServerKey, cfg.Payment.MidtransProduction, cfg.SiteURL())
	case "stripe", "":
		return payment.NewStripeGateway(cfg.Payment.StripeSecretKey, cfg.SiteURL())
	default:
		log.Fatalf("[FATAL] Unknown payment provider: %s", cfg.Payment.Provider)
		return nil
	}
}
