package handler_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubzohaib/Forest-MGT/internal/api/handler"
	"github.com/githubzohaib/Forest-MGT/internal/chathub"
	"github.com/githubzohaib/Forest-MGT/internal/gateway"
	"github.com/githubzohaib/Forest-MGT/internal/models"
)

func TestServeWebSocket_ReplaysRecentHistoryOnConnect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gatewayMock := new(MockGateway)
	registry := chathub.NewRegistry()
	h := handler.NewHandler(gatewayMock, registry, new(MockStorage), testSecret)

	user := &models.User{ID: "ranger-1", Role: models.RoleRanger}
	gatewayMock.On("History", "ranger-1", models.RoleRanger, gateway.HistoryFilter{}).
		Return([]models.Message{
			{ID: 2, FromUserID: "admin-1", Body: "gate repaired", IsBroadcast: true},
			{ID: 1, FromUserID: "admin-1", Body: "gate broken", IsBroadcast: true},
		}, nil)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { c.Set("currentUser", user) }, h.ServeWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	// History is stored newest first but replayed oldest first, so the
	// client appends in chronological order.
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first, second models.Message
	require.NoError(t, client.ReadJSON(&first))
	require.NoError(t, client.ReadJSON(&second))
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	assert.Len(t, registry.ConnectionsFor("ranger-1"), 1)
}

func TestServeWebSocket_ConnectSurvivesHistoryFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gatewayMock := new(MockGateway)
	registry := chathub.NewRegistry()
	h := handler.NewHandler(gatewayMock, registry, new(MockStorage), testSecret)

	user := &models.User{ID: "ranger-1", Role: models.RoleRanger}
	gatewayMock.On("History", "ranger-1", models.RoleRanger, gateway.HistoryFilter{}).
		Return(nil, assert.AnError)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { c.Set("currentUser", user) }, h.ServeWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	// The connection still comes up; live pushes reach it.
	require.Eventually(t, func() bool {
		return len(registry.ConnectionsFor("ranger-1")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	for _, conn := range registry.ConnectionsFor("ranger-1") {
		conn.Send() <- models.Message{ID: 3, Body: "live"}
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var pushed models.Message
	require.NoError(t, client.ReadJSON(&pushed))
	assert.Equal(t, uint(3), pushed.ID)
}
