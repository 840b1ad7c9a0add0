package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	employeeMock "go-leave/internal/employee/mock"
	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func eventMessage(t *testing.T, offset int64, event events.EmployeeProvisionedEvent) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: b}
}

func withoutRetryDelay(t *testing.T) {
	prev := provisionRetryDelay
	provisionRetryDelay = time.Millisecond
	t.Cleanup(func() { provisionRetryDelay = prev })
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	managerID := uint(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
		eventMessage(t, 1, events.EmployeeProvisionedEvent{
			EventType: events.EmployeeCreated, EmployeeID: 2, EmployeeNumber: "EMP-002",
			FullName: "Budi", Email: "budi@example.com", EmployeeType: "Employee", ManagerID: &managerID,
		}),
		{Offset: 2, Value: []byte(`not json`)},
		eventMessage(t, 3, events.EmployeeProvisionedEvent{EventType: "employee_terminated", EmployeeID: 2}),
	}}

	provisioner := employeeMock.NewMockService(ctrl)
	provisioner.EXPECT().
		Provision(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, uint(2), req.ID)
			assert.Equal(t, &managerID, req.ManagerID)
			return employee.EmployeeResponse{ID: req.ID}, nil
		}).
		Times(1)

	err := ConsumeEmployeeLifecycle(ctx, reader, provisioner, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

func TestConsumeEmployeeLifecycle_UnexpectedFailure(t *testing.T) {
	withoutRetryDelay(t)
	msg := eventMessage(t, 7, events.EmployeeProvisionedEvent{
		EventType: events.EmployeeUpdated, EmployeeID: 3, EmployeeNumber: "EMP-003",
		FullName: "Citra", Email: "citra@example.com",
	})
	later := eventMessage(t, 8, events.EmployeeProvisionedEvent{
		EventType: events.EmployeeUpdated, EmployeeID: 4, EmployeeNumber: "EMP-004",
		FullName: "Dewi", Email: "dewi@example.com",
	})

	t.Run("recovers within the retry budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{msg}}

		provisioner := employeeMock.NewMockService(ctrl)
		gomock.InOrder(
			provisioner.EXPECT().Provision(gomock.Any(), gomock.Any()).
				Return(employee.EmployeeResponse{}, errors.New("connection refused")),
			provisioner.EXPECT().Provision(gomock.Any(), gomock.Any()).
				Return(employee.EmployeeResponse{ID: 3}, nil),
		)

		err := ConsumeEmployeeLifecycle(ctx, reader, provisioner, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, []int64{7}, reader.committed)
	})

	t.Run("stops without committing past the failed offset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{msg, later}}

		provisioner := employeeMock.NewMockService(ctrl)
		provisioner.EXPECT().
			Provision(gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, errors.New("connection refused")).
			Times(maxProvisionAttempts)

		err := ConsumeEmployeeLifecycle(ctx, reader, provisioner, zap.NewNop())

		assert.ErrorContains(t, err, "offset 7")
		assert.Empty(t, reader.committed)
		assert.Len(t, reader.msgs, 1)
	})
}

func TestHandleEmployeeMessage_Errors(t *testing.T) {
	msg := eventMessage(t, 5, events.EmployeeProvisionedEvent{
		EventType: events.EmployeeUpdated, EmployeeID: 3, EmployeeNumber: "EMP-003",
		FullName: "Citra", Email: "citra@example.com",
	})

	t.Run("rejected employee is skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := employeeMock.NewMockService(ctrl)
		p.EXPECT().Provision(gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrManagerHasReports)

		assert.NoError(t, handleEmployeeMessage(context.Background(), msg, p, zap.NewNop()))
	})

	t.Run("infrastructure failure is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := employeeMock.NewMockService(ctrl)
		p.EXPECT().Provision(gomock.Any(), gomock.Any()).
			Return(employee.EmployeeResponse{}, errors.New("connection refused"))

		assert.Error(t, handleEmployeeMessage(context.Background(), msg, p, zap.NewNop()))
	})
}
