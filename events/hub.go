package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/gorilla/websocket"
)

// Event types pushed to the live schedule board.
const (
	EventAssignmentUpdate = "assignment_update"
	EventAssignmentDelete = "assignment_delete"
	EventScheduleUpdate   = "schedule_update"
	EventPoolUpdate       = "phone_pool_update"
	EventTenantUpdate     = "tenant_update"
	EventWorkerUpdate     = "worker_update"
	EventStaffNotif       = "staff_notification"
	EventDashboardUpdate  = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// ScheduleHub holds every connected schedule-board client (admin, operator,
// staff) and fans events out to them.
type ScheduleHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var scheduleHub = ScheduleHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the broadcast set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	scheduleHub.mutex.Lock()
	defer scheduleHub.mutex.Unlock()
	scheduleHub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	scheduleHub.mutex.Lock()
	defer scheduleHub.mutex.Unlock()
	delete(scheduleHub.clients, conn)
	conn.Close()
}

// BroadcastAssignmentUpdate pushes a changed assignment to every client.
func BroadcastAssignmentUpdate(assignment models.WorkAssignment) {
	broadcast(Message{
		Event: EventAssignmentUpdate,
		Data:  assignment,
	})
}

// BroadcastAssignmentDelete tells clients to drop an assignment from view.
func BroadcastAssignmentDelete(assignmentID uint) {
	broadcast(Message{
		Event: EventAssignmentDelete,
		Data: map[string]interface{}{
			"assignment_id": assignmentID,
		},
	})
}

// BroadcastPoolUpdate pushes the state of one pool number.
func BroadcastPoolUpdate(number models.PhoneNumber) {
	broadcast(Message{
		Event: EventPoolUpdate,
		Data:  number,
	})
}

// BroadcastTenantUpdate pushes a changed tenant record.
func BroadcastTenantUpdate(tenant models.Tenant) {
	broadcast(Message{
		Event: EventTenantUpdate,
		Data:  tenant,
	})
}

// BroadcastWorkerUpdate pushes a changed worker record.
func BroadcastWorkerUpdate(worker models.Worker) {
	broadcast(Message{
		Event: EventWorkerUpdate,
		Data:  worker,
	})
}

// BroadcastStaffNotification sends a plain text notice to staff clients.
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

// BroadcastDashboardUpdate tells dashboard clients to refetch their stats.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

// BroadcastMessage broadcasts an arbitrary event.
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	scheduleHub.mutex.Lock()
	defer scheduleHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range scheduleHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s event to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
