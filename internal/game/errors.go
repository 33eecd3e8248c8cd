package game

// Error carries a stable snake_case code the client maps to a message.
// Command-level errors are returned to the originating caller only and never
// broadcast.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrRoomNotFound      = &Error{Code: "room_not_found", Message: "room not found"}
	ErrRoomFull          = &Error{Code: "room_full", Message: "room is full"}
	ErrNameTaken         = &Error{Code: "name_taken", Message: "name already in use"}
	ErrRoomClosed        = &Error{Code: "room_closed", Message: "room is closed"}
	ErrPlayerNotFound    = &Error{Code: "player_not_found", Message: "player not in room"}
	ErrInvalidPhase      = &Error{Code: "invalid_phase", Message: "command not allowed in current phase"}
	ErrNotYourTurn       = &Error{Code: "not_your_turn", Message: "only the current drawer may do that"}
	ErrNotOwner          = &Error{Code: "not_owner", Message: "only the room owner may do that"}
	ErrInvalidWordChoice = &Error{Code: "invalid_word_choice", Message: "word is not among the offered choices"}
	ErrNotEnoughPlayers  = &Error{Code: "not_enough_players", Message: "at least two players are required"}
)
