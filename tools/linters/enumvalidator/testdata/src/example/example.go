package example

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "PENDIENTE"
	ClaimStatusResolved ClaimStatus = "RESUELTO"
)

type Priority string

const (
	PriorityHigh Priority = "ALTA"
)

type NotificationType string

const (
	NotificationTypeReminder NotificationType = "RECORDATORIO"
)

type Claim struct {
	Status   ClaimStatus
	Priority Priority
}

type Notification struct {
	Type NotificationType
}

func bad() {
	c := &Claim{}
	c.Status = "RESOLVED" // want "enum field Status assigned string literal"

	n := &Notification{}
	n.Type = "reminder" // want "enum field Type assigned string literal"

	_ = Claim{Priority: "URGENTE"} // want "enum field Priority assigned string literal"
}

func good() {
	c := &Claim{}
	c.Status = ClaimStatusResolved

	n := &Notification{}
	n.Type = NotificationTypeReminder

	_ = Claim{Status: ClaimStatusPending, Priority: PriorityHigh}
}

func alsoGood() {
	// Variable, not literal
	status := ClaimStatusPending
	c := &Claim{Status: status}
	_ = c
}
