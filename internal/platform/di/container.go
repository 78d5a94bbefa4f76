// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	storerouter "storefront/internal/adapters/in/http/store"
	storeHandler "storefront/internal/adapters/in/http/store/handler"
	"storefront/internal/adapters/in/http/middleware"
	outfs "storefront/internal/adapters/out/firestore"
	outgcs "storefront/internal/adapters/out/gcs"
	outmail "storefront/internal/adapters/out/mail"
	"storefront/internal/application/usecase"
	"storefront/internal/infra/config"
	firestoreinfra "storefront/internal/infra/firestore"
	gcsinfra "storefront/internal/infra/gcs"
	"storefront/internal/infra/secrets"
)

// Container is the storefront DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Config *config.Config

	Firestore *firestoreinfra.ClientWrapper
	GCS       *gcsinfra.ClientWrapper

	Sessions     *middleware.SessionManager
	FirebaseAuth *middleware.FirebaseAuthClient

	// Usecases
	CatalogUC  *usecase.CatalogUsecase
	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	AccountUC  *usecase.AccountUsecase
	SalesUC    *usecase.SalesUsecase
	MediaUC    *usecase.MediaUsecase

	keyProvider *secrets.SessionKeyProvider
}

// NewContainer wires infra, repositories, usecases and auth.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		cfg = config.Load()
	}

	fsClient, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		return nil, err
	}

	gcsClient, err := gcsinfra.NewClient(ctx, cfg.GCSBucket, cfg.GCPCreds)
	if err != nil {
		_ = fsClient.Close()
		return nil, err
	}

	// session signing key (env first, then Secret Manager)
	keyProvider, err := secrets.NewSessionKeyProvider(ctx, cfg.FirestoreProjectID, cfg.SessionSecretName, cfg.SessionSecret)
	if err != nil {
		_ = fsClient.Close()
		_ = gcsClient.Close()
		return nil, err
	}
	sessionKey, err := keyProvider.GetKey(ctx)
	if err != nil {
		_ = fsClient.Close()
		_ = gcsClient.Close()
		_ = keyProvider.Close()
		return nil, err
	}

	// repositories
	itemRepo := outfs.NewItemRepositoryFS(fsClient.Client)
	lineRepo := outfs.NewCartLineRepositoryFS(fsClient.Client)
	custRepo := outfs.NewCustomerRepositoryFS(fsClient.Client)
	saleRepo := outfs.NewSaleRepositoryFS(fsClient.Client)
	mediaRepo := outgcs.NewMediaRepositoryGCS(gcsClient.Client, gcsClient.Bucket)

	// receipt mail (optional)
	var mailer usecase.ReceiptSender
	if cfg.MailEnabled() {
		mailer = outmail.NewReceiptMailer(
			outmail.NewSendGridClient(cfg.SendGridAPIKey, cfg.MailFromName),
			cfg.MailFrom,
		)
	} else {
		log.Printf("[di] receipt mail disabled (SENDGRID_API_KEY / MAIL_FROM not set)")
	}

	// usecases
	catalogUC := usecase.NewCatalogUsecase(itemRepo, mediaRepo)
	cartUC := usecase.NewCartUsecase(lineRepo, itemRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartUC, catalogUC, lineRepo, saleRepo, mailer)
	accountUC := usecase.NewAccountUsecase(custRepo)
	salesUC := usecase.NewSalesUsecase(saleRepo, itemRepo)
	mediaUC := usecase.NewMediaUsecase(mediaRepo)

	// Firebase Auth (optional; federated sign-in)
	var fbAuth *middleware.FirebaseAuthClient
	if cfg.FirebaseProjectID != "" {
		fbAuth, err = newFirebaseAuth(ctx, cfg)
		if err != nil {
			// federated sign-in is degraded, not fatal
			log.Printf("[di] WARN: firebase auth unavailable: %v", err)
			fbAuth = nil
		}
	}

	return &Container{
		Config:       cfg,
		Firestore:    fsClient,
		GCS:          gcsClient,
		Sessions:     middleware.NewSessionManager(sessionKey, true),
		FirebaseAuth: fbAuth,
		CatalogUC:    catalogUC,
		CartUC:       cartUC,
		CheckoutUC:   checkoutUC,
		AccountUC:    accountUC,
		SalesUC:      salesUC,
		MediaUC:      mediaUC,
		keyProvider:  keyProvider,
	}, nil
}

func newFirebaseAuth(ctx context.Context, cfg *config.Config) (*middleware.FirebaseAuthClient, error) {
	var opts []option.ClientOption
	if cfg.GCPCreds != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCPCreds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("[di] firebase auth initialized (project: %s)", cfg.FirebaseProjectID)
	return client, nil
}

// Register mounts every storefront route onto mux.
func (c *Container) Register(mux *http.ServeMux) error {
	if c == nil {
		return errors.New("di: container is nil")
	}
	if mux == nil {
		return errors.New("di: mux is nil")
	}

	storerouter.Register(mux, storerouter.Deps{
		Catalog:  storeHandler.NewCatalogHandler(c.CatalogUC),
		Cart:     storeHandler.NewCartHandler(c.CartUC),
		Checkout: storeHandler.NewCheckoutHandler(c.CheckoutUC),
		Account:  storeHandler.NewAccountHandler(c.AccountUC, c.SalesUC, c.Sessions, c.FirebaseAuth),
		Admin:    storeHandler.NewAdminHandler(c.CatalogUC, c.SalesUC),
		Media:    storeHandler.NewMediaHandler(c.MediaUC),
	})
	return nil
}

// Close releases infra clients.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.keyProvider != nil {
		_ = c.keyProvider.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
}
