package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
	apperrors "github.com/AseemBaranwal/Sentimentor/internal/platform/errors"
)

func (s *Server) registerRoomRoutes() {
	s.echo.POST("/api/createRoom", s.handleCreateRoom)
	s.echo.POST("/api/addUser", s.handleAddUser)
	s.echo.GET("/api/getRooms", s.handleGetRooms)
	s.echo.GET("/api/getRooms/:roomId", s.handleGetRoom)
	s.echo.POST("/api/setSentiment", s.handleSetSentiment)
}

type createRoomRequest struct {
	RoomName string `json:"roomName"`
}

type addUserRequest struct {
	RoomID    int    `json:"roomId"`
	UserID    string `json:"userId"`
	Sentiment string `json:"sentiment"`
}

type setSentimentRequest struct {
	UserID    string `json:"userId"`
	Sentiment string `json:"sentiment"`
}

func (s *Server) handleCreateRoom(c echo.Context) error {
	ctx := c.Request().Context()

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.RoomName == "" {
		return apperrors.ValidationError("roomName is required")
	}

	room, err := s.app.CreateRoom(ctx, req.RoomName)
	if err != nil {
		return apperrors.InternalError("failed to create room", err).WithField("room_name", req.RoomName)
	}

	if err := c.JSON(http.StatusOK, map[string]int{"roomId": int(room.Code)}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAddUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.RoomID == 0 {
		return apperrors.ValidationError("roomId is required")
	}
	if req.UserID == "" {
		return apperrors.ValidationError("userId is required")
	}

	_, err := s.app.JoinRoom(ctx, domain.RoomCode(req.RoomID), req.UserID, domain.Sentiment(req.Sentiment))
	if errors.Is(err, domain.ErrRoomNotFound) {
		return apperrors.NotFoundError("Room not found").WithField("room_id", req.RoomID)
	}
	if err != nil {
		return apperrors.InternalError("failed to add user", err).WithField("room_id", req.RoomID)
	}

	if err := c.JSON(http.StatusOK, map[string]string{"message": "User added successfully"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetRooms(c echo.Context) error {
	ctx := c.Request().Context()

	rooms, err := s.app.GetRooms(ctx)
	if err != nil {
		return apperrors.InternalError("failed to list rooms", err)
	}

	if err := c.JSON(http.StatusOK, map[string][]domain.Room{"rooms": rooms}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetRoom(c echo.Context) error {
	ctx := c.Request().Context()

	raw := c.Param("roomId")
	code, err := strconv.Atoi(raw)
	if err != nil {
		return apperrors.ValidationError("invalid room id").WithField("room_id", raw)
	}

	room, err := s.app.GetRoom(ctx, domain.RoomCode(code))
	if errors.Is(err, domain.ErrRoomNotFound) {
		return apperrors.NotFoundError("Room not found").WithField("room_id", code)
	}
	if err != nil {
		return apperrors.InternalError("failed to get room", err).WithField("room_id", code)
	}

	if err := c.JSON(http.StatusOK, room); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSetSentiment(c echo.Context) error {
	ctx := c.Request().Context()

	var req setSentimentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.UserID == "" {
		return apperrors.ValidationError("userId is required")
	}
	if req.Sentiment == "" {
		return apperrors.ValidationError("sentiment is required")
	}

	_, err := s.app.SetSentiment(ctx, req.UserID, domain.Sentiment(req.Sentiment))
	if errors.Is(err, domain.ErrMemberNotFound) {
		return apperrors.NotFoundError("Member not found").WithField("user_id", req.UserID)
	}
	if err != nil {
		return apperrors.InternalError("failed to set sentiment", err).WithField("user_id", req.UserID)
	}

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
