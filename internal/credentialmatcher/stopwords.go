package credentialmatcher

// stopWords are filtered out of page titles and service names before
// matching, so generic site chrome ("login", "welcome") never causes a
// false-positive credential suggestion. Covers English and Dutch, the
// languages the matcher has been tuned against.
var stopWords = map[string]struct{}{
	// Authentication related
	"login": {}, "signin": {}, "sign": {}, "register": {}, "signup": {}, "account": {},
	"authentication": {}, "password": {}, "access": {}, "auth": {}, "session": {},
	"authenticate": {}, "credentials": {}, "logout": {}, "signout": {},

	// Navigation/site sections
	"portal": {}, "dashboard": {}, "home": {}, "welcome": {}, "page": {}, "site": {},
	"secure": {}, "member": {}, "user": {}, "profile": {}, "settings": {}, "menu": {},
	"overview": {}, "index": {}, "main": {}, "start": {}, "landing": {},

	// Marketing/promotional
	"free": {}, "create": {}, "new": {}, "your": {}, "special": {}, "offer": {},
	"deal": {}, "discount": {}, "promotion": {}, "newsletter": {},

	// Common website sections
	"help": {}, "support": {}, "contact": {}, "about": {}, "faq": {}, "terms": {},
	"privacy": {}, "cookie": {}, "service": {}, "services": {}, "products": {},
	"shop": {}, "store": {}, "cart": {}, "checkout": {},

	// Generic descriptors
	"online": {}, "web": {}, "digital": {}, "mobile": {}, "my": {}, "personal": {},
	"private": {}, "general": {}, "default": {}, "standard": {}, "website": {},

	// System/technical
	"system": {}, "admin": {}, "administrator": {}, "platform": {},
	"gateway": {}, "api": {}, "interface": {}, "console": {},

	// Time-related
	"today": {}, "now": {}, "current": {}, "latest": {}, "newest": {}, "recent": {},

	// General
	"the": {}, "and": {}, "or": {}, "but": {}, "to": {}, "up": {},

	// Dutch: authentication related
	"inloggen": {}, "registreren": {}, "registratie": {}, "aanmelden": {},
	"inschrijven": {}, "uitloggen": {}, "wachtwoord": {}, "toegang": {},
	"authenticatie": {},

	// Dutch: navigation/site sections
	"portaal": {}, "overzicht": {}, "startpagina": {}, "welkom": {}, "pagina": {},
	"beveiligd": {}, "lid": {}, "gebruiker": {}, "profiel": {}, "instellingen": {},
	"begin": {}, "hoofdpagina": {},

	// Dutch: marketing/promotional
	"gratis": {}, "nieuw": {}, "jouw": {}, "schrijf": {}, "nieuwsbrief": {},
	"aanbieding": {}, "korting": {}, "speciaal": {}, "actie": {},

	// Dutch: common website sections
	"hulp": {}, "ondersteuning": {}, "voorwaarden": {},
	"dienst": {}, "diensten": {}, "producten": {},
	"winkel": {}, "bestellen": {}, "winkelwagen": {},

	// Dutch: generic descriptors
	"digitaal": {}, "mobiel": {}, "mijn": {}, "persoonlijk": {},
	"algemeen": {}, "standaard": {},

	// Dutch: system/technical
	"systeem": {}, "beheer": {}, "beheerder": {},

	// Dutch: time-related
	"vandaag": {}, "huidig": {}, "nieuwste": {},

	// Dutch: general
	"je": {}, "in": {}, "op": {}, "de": {}, "van": {}, "ons": {}, "allemaal": {},
}
