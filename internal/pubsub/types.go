package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// Local is an in-process bus. Besides publishing it is a watermill
// message.Subscriber, so handlers can consume what the process publishes.
type Local struct {
	*gochannel.GoChannel
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventReservationCreated       EventType = "reservation-created"
	EventReservationDeleted       EventType = "reservation-deleted"
	EventReservationStatusChanged EventType = "reservation-status-changed"
	EventPlayerJoined             EventType = "player-joined"
	EventPlayerLeft               EventType = "player-left"
	EventWaitListJoined           EventType = "waitlist-joined"
	EventWaitListLeft             EventType = "waitlist-left"
	EventSlotOpened               EventType = "slot-opened"
	EventLoginStatus              EventType = "login-status"
	EventShowGameDetails          EventType = "show-game-details"
)

// Topics lists every event type, in publishing order of the lifecycle.
var Topics = []EventType{
	EventReservationCreated,
	EventReservationDeleted,
	EventReservationStatusChanged,
	EventPlayerJoined,
	EventPlayerLeft,
	EventWaitListJoined,
	EventWaitListLeft,
	EventSlotOpened,
	EventLoginStatus,
	EventShowGameDetails,
}

type ReservationEvent struct {
	ReservationID int64  `msgpack:"reservationId"`
	ExternalID    string `msgpack:"externalId"`
	Title         string `msgpack:"title"`
	Date          string `msgpack:"date"`
	StartTime     string `msgpack:"startTime"`
}

type StatusChangedEvent struct {
	ReservationID int64  `msgpack:"reservationId"`
	Title         string `msgpack:"title"`
	Date          string `msgpack:"date"`
	StartTime     string `msgpack:"startTime"`
	From          string `msgpack:"from"`
	To            string `msgpack:"to"`
}

// PlayerEvent is sent for lineup and waiting-list changes alike.
type PlayerEvent struct {
	ReservationID int64  `msgpack:"reservationId"`
	UserID        string `msgpack:"userId"`
	PlayerName    string `msgpack:"playerName,omitempty"`
}

// SlotOpenedEvent is sent when a full reservation loses a player while
// someone is waiting.
type SlotOpenedEvent struct {
	ReservationID int64    `msgpack:"reservationId"`
	Title         string   `msgpack:"title"`
	Date          string   `msgpack:"date"`
	StartTime     string   `msgpack:"startTime"`
	OpenSlots     int      `msgpack:"openSlots"`
	WaitList      []string `msgpack:"waitList"`
}

type LoginStatusEvent struct {
	UserID   string `msgpack:"userId"`
	LoggedIn bool   `msgpack:"loggedIn"`
	At       int64  `msgpack:"at"`
}

type GameDetailsEvent struct {
	ReservationID int64 `msgpack:"reservationId"`
}
