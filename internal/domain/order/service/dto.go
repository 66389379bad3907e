package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/model"
)

// OrderView is the hydrated order returned to clients: order fields plus
// user display fields and line-item summaries.
type OrderView struct {
	ID            uint              `json:"id"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	OrderDate     time.Time         `json:"orderDate"`
	Status        model.OrderStatus `json:"status"`
	RazorpayKeyID *string           `json:"razorpayKeyId"`
	PaymentID     *string           `json:"paymentId"`
	PaymentStatus *string           `json:"paymentStatus"`
	UserName      string            `json:"userName"`
	Email         string            `json:"email"`
	OrderItems    []OrderItemView   `json:"orderItems"`
}

type OrderItemView struct {
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func toView(order *model.Order) *OrderView {
	view := &OrderView{
		ID:            order.ID,
		TotalAmount:   order.TotalAmount,
		OrderDate:     order.OrderDate,
		Status:        order.Status,
		RazorpayKeyID: order.RazorpayKeyID,
		PaymentID:     order.PaymentID,
		PaymentStatus: order.PaymentStatus,
		OrderItems:    make([]OrderItemView, 0, len(order.OrderItems)),
	}

	if order.User != nil {
		view.UserName = order.User.Name
		view.Email = order.User.Email
	}

	for _, item := range order.OrderItems {
		itemView := OrderItemView{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			itemView.ProductName = item.Product.Name
		}
		view.OrderItems = append(view.OrderItems, itemView)
	}
	return view
}

func toViews(orders []model.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *toView(&orders[i]))
	}
	return views
}
