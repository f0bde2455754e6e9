package target

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIndex_OK(t *testing.T) {
	app := New(Config{})

	status, body := get(t, app, "/index.php")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)
}

func TestHealth(t *testing.T) {
	app := New(Config{FailRate: 1})

	status, _ := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, status)
}

func TestIndex_FailEvery(t *testing.T) {
	app := New(Config{FailEvery: 2})

	var codes []int
	for i := 0; i < 6; i++ {
		status, _ := get(t, app, "/index.php")
		codes = append(codes, status)
	}
	assert.Equal(t, []int{200, 500, 200, 500, 200, 500}, codes)
}

func TestIndex_FailRateAlways(t *testing.T) {
	app := New(Config{FailRate: 1})

	for i := 0; i < 5; i++ {
		status, _ := get(t, app, "/index.php")
		assert.Equal(t, http.StatusInternalServerError, status)
	}
}

func TestIndex_Delay(t *testing.T) {
	app := New(Config{Delay: 50 * time.Millisecond})

	start := time.Now()
	status, _ := get(t, app, "/index.php")
	assert.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestUnknownPath(t *testing.T) {
	status, _ := get(t, New(Config{}), "/missing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"rate in range", Config{FailRate: 0.5}, false},
		{"rate above one", Config{FailRate: 1.5}, true},
		{"negative rate", Config{FailRate: -0.1}, true},
		{"negative every", Config{FailEvery: -1}, true},
		{"negative delay", Config{Delay: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, Config{Addr: addr}, logrus.NewEntry(logger))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_RejectsInvalidConfig(t *testing.T) {
	logger, _ := test.NewNullLogger()
	err := ListenAndServe(context.Background(), Config{FailRate: 2}, logrus.NewEntry(logger))
	assert.Error(t, err)
}
