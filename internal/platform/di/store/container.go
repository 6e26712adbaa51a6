// internal/platform/di/store/container.go
package store

import (
	"errors"
	"log"

	usecase "storefront/internal/application/usecase"

	outdb "storefront/internal/adapters/out/db"
	outfs "storefront/internal/adapters/out/firestore"
	outgcs "storefront/internal/adapters/out/gcs"
	outmail "storefront/internal/adapters/out/mail"

	shared "storefront/internal/platform/di/shared"
)

// Container is the storefront DI container.
// Pure DI: build deps only. No routing branching here.
type Container struct {
	Infra *shared.Infra

	// Usecases
	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	ReceiptUC  *usecase.ReceiptUsecase
	OrderUC    *usecase.OrderUsecase
	SettingsUC *usecase.SettingsUsecase
}

// NewContainer wires repositories and usecases on top of shared infra.
func NewContainer(inf *shared.Infra) (*Container, error) {
	if inf == nil {
		return nil, errors.New("store.container: infra is nil")
	}
	if inf.Firestore == nil || inf.GCS == nil || inf.DB == nil {
		return nil, errors.New("store.container: infra clients are not initialized")
	}

	// Outbound adapters
	cartRepo := outfs.NewCartRepositoryFS(inf.Firestore)
	orderRepo := outdb.NewOrderRepositoryPG(inf.DB)
	itemRepo := outdb.NewOrderItemRepositoryPG(inf.DB)
	settingsRepo := outdb.NewSettingsRepositoryPG(inf.DB)
	receiptStore := outgcs.NewReceiptRepositoryGCS(inf.GCS, inf.ReceiptBucket)

	// Mailer (optional; disabled when no API key or no from address)
	var mailer usecase.OrderMailer
	if inf.SendGridAPIKey != "" && inf.MailFrom != "" {
		client := outmail.NewSendGridClient(inf.SendGridAPIKey, inf.MailFromName)
		mailer = outmail.NewOrderMailer(client, inf.MailFrom)
		log.Printf("[store.container] order confirmation mail enabled")
	} else {
		log.Printf("[store.container] order confirmation mail disabled")
	}

	cont := &Container{
		Infra:      inf,
		CartUC:     usecase.NewCartUsecase(cartRepo),
		CheckoutUC: usecase.NewCheckoutUsecase(cartRepo, orderRepo, itemRepo, receiptStore, mailer),
		ReceiptUC:  usecase.NewReceiptUsecase(orderRepo, receiptStore),
		OrderUC:    usecase.NewOrderUsecase(orderRepo, itemRepo),
		SettingsUC: usecase.NewSettingsUsecase(settingsRepo),
	}

	return cont, nil
}
