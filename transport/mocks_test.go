package transport

import (
	"github.com/stretchr/testify/mock"
)

// --- Conn ---

type MockConn struct {
	mock.Mock
}

func (m *MockConn) Close(reason string) {
	m.Called(reason)
}

func (m *MockConn) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockConn) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockConn) Ping() error {
	args := m.Called()
	return args.Error(0)
}
