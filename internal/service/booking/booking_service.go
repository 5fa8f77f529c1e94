package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/metrics"
	"github.com/Domenick1991/carrental/internal/notify"
	"github.com/Domenick1991/carrental/internal/service/cart"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Quote(ctx context.Context) (*domain.Quote, error)
	Confirm(ctx context.Context, input ConfirmInput) (*domain.Booking, error)
}

type Cart interface {
	SelectedItems() []domain.CartLineItem
	RemoveItems(ctx context.Context, ids ...string)
}

type PaymentMethods interface {
	Selected() (string, bool)
}

type History interface {
	Record(ctx context.Context, record domain.NotificationRecord) error
}

type CardValidator interface {
	CreditCard(card *domain.CreditCard) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	cart           Cart
	payments       PaymentMethods
	history        History
	dispatcher     notify.Dispatcher
	validator      CardValidator
	producer       Producer
	bookingTopic   string
	driversFeeRate float64
	log            *zap.Logger
	now            func() time.Time
}

type ConfirmInput struct {
	Card *domain.CreditCard `json:"card"`
}

type BookingServiceOption func(*BookingService)

// WithBookingEvents publishes a booking_confirmed event per booked car.
func WithBookingEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func WithLogger(log *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	cart Cart,
	payments PaymentMethods,
	history History,
	dispatcher notify.Dispatcher,
	validator CardValidator,
	driversFeeRate float64,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		cart:           cart,
		payments:       payments,
		history:        history,
		dispatcher:     dispatcher,
		validator:      validator,
		driversFeeRate: driversFeeRate,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	service.log = logger.OrNop(service.log)
	return service
}

// Quote prices the selected items: subtotal, drivers fee and grand total.
func (s *BookingService) Quote(_ context.Context) (*domain.Quote, error) {
	items := s.cart.SelectedItems()
	if len(items) == 0 {
		return nil, ErrNothingSelected
	}

	subtotal := cart.SumPrice(items)
	fee := subtotal * s.driversFeeRate
	return &domain.Quote{
		Items:      items,
		Subtotal:   subtotal,
		DriversFee: fee,
		GrandTotal: subtotal + fee,
	}, nil
}

// Confirm books every selected item. Each booked car gets a confirmation
// notification which is recorded into history; a failed send or record is
// logged and does not fail the booking. Booked items leave the cart.
func (s *BookingService) Confirm(ctx context.Context, input ConfirmInput) (*domain.Booking, error) {
	quote, err := s.Quote(ctx)
	if err != nil {
		return nil, err
	}

	method, ok := s.payments.Selected()
	if !ok {
		return nil, ErrNoPaymentMethod
	}
	if domain.IsCardPayment(method) {
		if input.Card == nil {
			return nil, ErrCardRequired
		}
		if err := s.validator.CreditCard(input.Card); err != nil {
			return nil, err
		}
	}

	now := s.now()
	booking := &domain.Booking{
		Cars:          make([]domain.BookedCar, 0, len(quote.Items)),
		PaymentMethod: method,
		Quote:         *quote,
		ConfirmedAt:   now.UTC(),
	}
	ids := make([]string, 0, len(quote.Items))

	for _, item := range quote.Items {
		price := item.Price()
		booked := domain.BookedCar{
			BookingID:  fmt.Sprintf("BK-%d-%s", now.UnixMilli(), item.ID),
			LineItemID: item.ID,
			Car:        item.Car,
			RentalDays: item.Quantity,
			TotalPrice: price + price*s.driversFeeRate,
		}
		booked.NotificationID = s.notify(ctx, booked, now)

		if err := s.publish(ctx, booked, method, now); err != nil {
			s.log.Warn("publish booking event", zap.String("booking_id", booked.BookingID), zap.Error(err))
		}
		metrics.BookingsConfirmed.Inc()

		booking.Cars = append(booking.Cars, booked)
		ids = append(ids, item.ID)
	}

	s.cart.RemoveItems(ctx, ids...)
	return booking, nil
}

// notify sends the confirmation and records it. It returns the history
// identifier, or "" when sending failed.
func (s *BookingService) notify(ctx context.Context, booked domain.BookedCar, now time.Time) string {
	title, body, data := notify.BookingConfirmed(notify.BookingDetails{
		BookingID:  booked.BookingID,
		CarBrand:   booked.Car.Brand,
		CarModel:   booked.Car.DisplayModel(),
		RentalDays: booked.RentalDays,
		TotalPrice: booked.TotalPrice,
	}, now)

	id, err := s.dispatcher.Send(ctx, title, body, data)
	if err != nil {
		s.log.Error("send booking notification", zap.String("booking_id", booked.BookingID), zap.Error(err))
		return ""
	}
	if id == "" {
		id = fmt.Sprintf("booking_%d", now.UnixMilli())
	}

	err = s.history.Record(ctx, domain.NotificationRecord{
		Identifier: id,
		Title:      title,
		Body:       body,
		Data:       data,
	})
	if err != nil {
		s.log.Warn("record notification history", zap.String("identifier", id), zap.Error(err))
	}
	return id
}

func (s *BookingService) publish(ctx context.Context, booked domain.BookedCar, method string, now time.Time) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:          domain.NotificationTypeBookingConfirmed,
		BookingID:     booked.BookingID,
		CarID:         booked.Car.ID,
		CarBrand:      booked.Car.Brand,
		CarModel:      booked.Car.DisplayModel(),
		RentalDays:    booked.RentalDays,
		TotalPrice:    booked.TotalPrice,
		PaymentMethod: method,
		ConfirmedAt:   now.UTC(),
	}
	return s.producer.Publish(ctx, s.bookingTopic, booked.BookingID, event)
}

var _ BookingUseCase = (*BookingService)(nil)
