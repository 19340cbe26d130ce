package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quizdesk-service/internal/app"
	"quizdesk-service/internal/domain"
)

type WSHandler struct {
	service  *app.SessionService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.SessionService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type togglePayload struct {
	QuestionID  string `json:"questionId"`
	ChoiceIndex int    `json:"choiceIndex"`
	Selected    bool   `json:"selected"`
}

type answerState struct {
	QuestionID string `json:"questionId"`
	Answer     []int  `json:"answer"`
}

// questionView is a question stripped of correct answers and commentary;
// those are revealed only in the verdict payload.
type questionView struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Selections []string `json:"selections"`
}

type sessionPayload struct {
	SessionID string           `json:"sessionId"`
	Group     domain.GroupInfo `json:"group"`
	Questions []questionView   `json:"questions"`
}

type verdictPayload struct {
	Verdict      domain.Verdict          `json:"verdict"`
	Results      []domain.QuestionResult `json:"results"`
	HistorySaved bool                    `json:"historySaved"`
	Warning      string                  `json:"warning,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request to a websocket and runs one quiz-taking
// session over it: checkbox toggles and the submit action arrive as inbound
// messages, answer state and the verdict go back out. All events of a
// connection are handled sequentially by this loop, so the quiz model never
// sees concurrent mutation.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	groupID := r.URL.Query().Get("groupId")
	if token == "" || groupID == "" {
		http.Error(w, "missing token or groupId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, group, err := h.service.Start(r.Context(), token, groupID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.End(r.Context(), session.ID)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{
		SessionID: session.ID,
		Group:     group.Info,
		Questions: questionViews(group.Questions),
	}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "toggle":
			var payload togglePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid toggle payload"}}
				continue
			}
			answer, err := h.service.Toggle(r.Context(), session.ID, payload.QuestionID, payload.ChoiceIndex, payload.Selected)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "answerState", Payload: answerState{
				QuestionID: payload.QuestionID,
				Answer:     answer,
			}}
		case "submit":
			result, err := h.service.Submit(r.Context(), session.ID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			payload := verdictPayload{
				Verdict:      result.Verdict,
				Results:      result.Results,
				HistorySaved: result.HistoryErr == nil,
			}
			if result.HistoryErr != nil {
				// Grading succeeded; the review copy did not make it to storage.
				payload.Warning = "history not saved: " + result.HistoryErr.Error()
				log.Printf("history persist failed for session %s: %v", session.ID, result.HistoryErr)
			}
			send <- outboundMessage[any]{Type: "verdict", Payload: payload}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

func questionViews(questions []domain.Question) []questionView {
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Selections: q.Selections,
		})
	}
	return views
}
