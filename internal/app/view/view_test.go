package view_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/todo/internal/app/view"
	"github.com/slok/todo/internal/log"
	"github.com/slok/todo/internal/model"
	"github.com/slok/todo/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config view.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: view.ServiceConfig{
				Repository: &storagemock.MockRepository{},
				Logger:     log.Noop,
			},
		},
		"missing repository should fail": {
			config: view.ServiceConfig{Logger: log.Noop},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := view.NewService(test.config)
			if test.expErr {
				require.Error(t, err)
				require.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
		})
	}
}

func TestService_Run(t *testing.T) {
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	stored := func() []model.Task {
		return []model.Task{
			{Title: "march", DueDate: &mar},
			{Title: "none"},
			{Title: "january", DueDate: &jan, Completed: true},
		}
	}

	tests := map[string]struct {
		mock      func(m *storagemock.MockRepository)
		req       view.Request
		expResult []model.Task
		expKind   model.ErrorKind
	}{
		"empty filter should list all": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListTasks", mock.Anything).Once().Return(stored(), nil)
			},
			req:       view.Request{},
			expResult: stored(),
		},
		"pending filter": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListTasks", mock.Anything).Once().Return(stored(), nil)
			},
			req:       view.Request{Filter: model.FilterPending},
			expResult: []model.Task{stored()[0], stored()[1]},
		},
		"completed filter": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListTasks", mock.Anything).Once().Return(stored(), nil)
			},
			req:       view.Request{Filter: model.FilterCompleted},
			expResult: []model.Task{stored()[2]},
		},
		"due date filter should sort with missing dates first": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListTasks", mock.Anything).Once().Return(stored(), nil)
			},
			req:       view.Request{Filter: model.FilterDueDate},
			expResult: []model.Task{stored()[1], stored()[2], stored()[0]},
		},
		"missing store should return an empty list": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListTasks", mock.Anything).Once().Return([]model.Task{}, nil)
			},
			req:       view.Request{Filter: model.FilterAll},
			expResult: []model.Task{},
		},
		"unknown filter should fail without loading": {
			mock:    func(m *storagemock.MockRepository) {},
			req:     view.Request{Filter: "overdue"},
			expKind: model.ErrorKindInvalidInput,
		},
		"repository error should propagate": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListTasks", mock.Anything).Once().Return(nil, fmt.Errorf("bad: %w", model.ErrMalformedStore))
			},
			req:     view.Request{},
			expKind: model.ErrorKindMalformedStore,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			// Setup
			m := &storagemock.MockRepository{}
			test.mock(m)

			svc, err := view.NewService(view.ServiceConfig{
				Repository: m,
				Logger:     log.Noop,
			})
			require.NoError(err)

			// Execute
			result, err := svc.Run(context.Background(), test.req)

			// Verify
			if test.expKind != "" {
				require.Error(err)
				assert.Equal(test.expKind, model.KindOf(err))
			} else {
				require.NoError(err)
				assert.Equal(test.expResult, result)
			}

			m.AssertExpectations(t)
		})
	}
}
