package mapper

import (
	"encoding/json"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/model"

	"gorm.io/datatypes"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	product := map[string]interface{}{}
	if len(o.Product) > 0 {
		_ = json.Unmarshal(o.Product, &product)
	}
	return &entity.Order{
		Id:                     o.Id,
		SubscriptionId:         o.SubscriptionId,
		UserId:                 o.UserId,
		Amount:                 o.Amount,
		Currency:               o.Currency,
		Status:                 entity.OrderStatus(o.Status),
		PaymentStatus:          o.PaymentStatus,
		InvoiceStatus:          o.InvoiceStatus,
		Product:                product,
		ProviderPaymentId:      o.ProviderPaymentId,
		ProviderInvoiceId:      o.ProviderInvoiceId,
		ProviderSubscriptionId: o.ProviderSubscriptionId,
		CheckoutSessionId:      o.CheckoutSessionId,
		ReceiptURL:             o.ReceiptURL,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	var product datatypes.JSON
	if o.Product != nil {
		if raw, err := json.Marshal(o.Product); err == nil {
			product = datatypes.JSON(raw)
		}
	}
	return &model.Order{
		Id:                     o.Id,
		SubscriptionId:         o.SubscriptionId,
		UserId:                 o.UserId,
		Amount:                 o.Amount,
		Currency:               o.Currency,
		Status:                 string(o.Status),
		PaymentStatus:          o.PaymentStatus,
		InvoiceStatus:          o.InvoiceStatus,
		Product:                product,
		ProviderPaymentId:      o.ProviderPaymentId,
		ProviderInvoiceId:      o.ProviderInvoiceId,
		ProviderSubscriptionId: o.ProviderSubscriptionId,
		CheckoutSessionId:      o.CheckoutSessionId,
		ReceiptURL:             o.ReceiptURL,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
}
