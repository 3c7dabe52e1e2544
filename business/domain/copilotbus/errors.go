package copilotbus

import "errors"

// Set of error variables for the dispatch engine. Business outcomes such as
// an unknown tool or a missing customer are results, not errors.
var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrActorNotFound = errors.New("actor not found")
	ErrIntentService = errors.New("intent service failure")
)

// Replies composed by the dispatcher.
const (
	msgFallback         = "Ich verstehe Ihre Anfrage. Wie kann ich Ihnen helfen?"
	msgNotImplemented   = "Diese Funktion ist noch nicht implementiert."
	msgCustomerCreated  = `Kunde "%s" wurde erfolgreich angelegt.`
	msgCustomerNotFound = `Kunde "%s" wurde nicht gefunden. Bitte legen Sie den Kunden zuerst an.`
	msgOfferCreated     = `Angebot für "%s" wurde erstellt. %s`
	msgOfferPrice       = "Gesamtpreis: %s €"
	msgOfferNoPrice     = "Preis noch nicht festgelegt."
	msgOpenLeads        = "Sie haben aktuell %d offene Leads (Kunden ohne Angebot)."
	msgRejected         = "Die Aktion konnte nicht ausgeführt werden. Bitte prüfen Sie die Angaben."
)
