package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"/tmp/np.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate",
		dsn("/tmp/np.db"))
	assert.Equal(t,
		"file:np.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate",
		dsn("file:np.db?mode=rwc"))
}
