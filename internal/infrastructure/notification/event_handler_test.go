package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// captureNotifier records every notification it receives
type captureNotifier struct {
	ids      []TemplateID
	messages []string
}

func (n *captureNotifier) Notify(_ context.Context, id TemplateID, fields Fields) error {
	message, err := Render(id, fields)
	if err != nil {
		return err
	}
	n.ids = append(n.ids, id)
	n.messages = append(n.messages, message)
	return nil
}

func newEventDeal(t *testing.T) *deal.Deal {
	t.Helper()
	d, err := deal.NewDeal(
		"DL-2026-050",
		uuid.New(),
		valueobject.NewMoneyAEDFromFloat(300000),
		deal.Parties{BuyerID: uuid.New(), SellerID: uuid.New()},
		deal.Agents{PrimaryID: uuid.New()},
	)
	require.NoError(t, err)
	return d
}

func TestEventNotificationHandler_StageAdvanced(t *testing.T) {
	sink := &captureNotifier{}
	handler := NewEventNotificationHandler(sink, zap.NewNop())
	d := newEventDeal(t)

	event := deal.NewDealStageAdvancedEvent(d, deal.StageOfferAccepted, deal.StageAgreementSigning)
	require.NoError(t, handler.Handle(context.Background(), event))

	require.Len(t, sink.messages, 1)
	assert.Equal(t, TemplateStageAdvanced, sink.ids[0])
	assert.Equal(t, "Deal DL-2026-050 advanced from offer-accepted to agreement-signing.", sink.messages[0])
}

func TestEventNotificationHandler_Cancelled(t *testing.T) {
	sink := &captureNotifier{}
	handler := NewEventNotificationHandler(sink, zap.NewNop())
	d := newEventDeal(t)

	event := deal.NewDealCancelledEvent(d, "financing fell through")
	require.NoError(t, handler.Handle(context.Background(), event))

	require.Len(t, sink.messages, 1)
	assert.Equal(t, "Deal DL-2026-050 cancelled: financing fell through.", sink.messages[0])
}

// unknownEvent is a DomainEvent the handler has no template for
type unknownEvent struct {
	shared.BaseDomainEvent
}

func TestEventNotificationHandler_IgnoresUnknownEvents(t *testing.T) {
	sink := &captureNotifier{}
	handler := NewEventNotificationHandler(sink, zap.NewNop())

	event := &unknownEvent{BaseDomainEvent: shared.NewBaseDomainEvent("SomethingElse", "Other", uuid.New())}
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Empty(t, sink.messages)
}
