package pushover

// TemplateDescriptor is an immutable bundle of default notification options
// keyed by a symbolic template name.
type TemplateDescriptor struct {
	Title    string
	Priority int
	Sound    string
}

// CategoryDescriptor is the category counterpart of TemplateDescriptor; the
// icon is prepended to generated titles.
type CategoryDescriptor struct {
	Priority int
	Sound    string
	Icon     string
}

const (
	// DefaultTemplate is the fallback for unrecognized template names.
	DefaultTemplate = "notification"
	// DefaultCategory is the fallback for unrecognized category names.
	DefaultCategory = "other"
)

// templateNames fixes the enumeration order for docs and schema enums.
var templateNames = []string{
	"success", "error", "warning", "info", "reminder", "alert",
	"notification", "update", "system", "user", "payment", "security",
	"backup", "monitoring", "weather", "news", "social", "email",
	"sms", "call",
}

var templates = map[string]TemplateDescriptor{
	"success":      {Title: "✅ Success", Priority: 0, Sound: "pushover"},
	"error":        {Title: "❌ Error", Priority: 1, Sound: "falling"},
	"warning":      {Title: "⚠️ Warning", Priority: 1, Sound: "cosmic"},
	"info":         {Title: "ℹ️ Information", Priority: -1, Sound: "none"},
	"reminder":     {Title: "⏰ Reminder", Priority: 0, Sound: "magic"},
	"alert":        {Title: "🚨 Alert", Priority: 1, Sound: "siren"},
	"notification": {Title: "📢 Notification", Priority: 0, Sound: "pushover"},
	"update":       {Title: "🔄 Update", Priority: 0, Sound: "cosmic"},
	"system":       {Title: "⚙️ System", Priority: 1, Sound: "mechanical"},
	"user":         {Title: "👤 User", Priority: 0, Sound: "incoming"},
	"payment":      {Title: "💳 Payment", Priority: 1, Sound: "cashregister"},
	"security":     {Title: "🔒 Security", Priority: 2, Sound: "siren"},
	"backup":       {Title: "💾 Backup", Priority: 0, Sound: "cosmic"},
	"monitoring":   {Title: "📊 Monitoring", Priority: 1, Sound: "spacealarm"},
	"weather":      {Title: "🌤️ Weather", Priority: 0, Sound: "cosmic"},
	"news":         {Title: "📰 News", Priority: 0, Sound: "bugle"},
	"social":       {Title: "📱 Social", Priority: -1, Sound: "incoming"},
	"email":        {Title: "📧 Email", Priority: 0, Sound: "incoming"},
	"sms":          {Title: "💬 SMS", Priority: 1, Sound: "magic"},
	"call":         {Title: "📞 Call", Priority: 2, Sound: "siren"},
}

var categoryNames = []string{
	"system", "user", "business", "personal", "monitoring", "security",
	"entertainment", "news", "weather", "social", "communication", "finance",
	"health", "travel", "education", "sports", "gaming", "music",
	"video", "other",
}

var categories = map[string]CategoryDescriptor{
	"system":        {Priority: 1, Sound: "mechanical", Icon: "⚙️"},
	"user":          {Priority: 0, Sound: "incoming", Icon: "👤"},
	"business":      {Priority: 1, Sound: "cashregister", Icon: "💼"},
	"personal":      {Priority: 0, Sound: "pushover", Icon: "👤"},
	"monitoring":    {Priority: 1, Sound: "spacealarm", Icon: "📊"},
	"security":      {Priority: 2, Sound: "siren", Icon: "🔒"},
	"entertainment": {Priority: -1, Sound: "magic", Icon: "🎮"},
	"news":          {Priority: 0, Sound: "bugle", Icon: "📰"},
	"weather":       {Priority: 0, Sound: "cosmic", Icon: "🌤️"},
	"social":        {Priority: -1, Sound: "incoming", Icon: "📱"},
	"communication": {Priority: 0, Sound: "incoming", Icon: "💬"},
	"finance":       {Priority: 1, Sound: "cashregister", Icon: "💰"},
	"health":        {Priority: 1, Sound: "falling", Icon: "🏥"},
	"travel":        {Priority: 0, Sound: "cosmic", Icon: "✈️"},
	"education":     {Priority: 0, Sound: "classical", Icon: "📚"},
	"sports":        {Priority: 0, Sound: "bike", Icon: "⚽"},
	"gaming":        {Priority: -1, Sound: "magic", Icon: "🎮"},
	"music":         {Priority: -1, Sound: "pianobar", Icon: "🎵"},
	"video":         {Priority: -1, Sound: "magic", Icon: "🎬"},
	"other":         {Priority: 0, Sound: "pushover", Icon: "📢"},
}

var sounds = []string{
	"pushover", "bike", "bugle", "cashregister", "classical", "cosmic",
	"falling", "gamelan", "incoming", "intermission", "magic", "mechanical",
	"pianobar", "siren", "spacealarm", "tugboat", "alien", "climb",
	"persistent", "echo", "updown", "none",
}

var deviceTypes = []string{
	"iphone", "ipad", "android", "desktop", "web", "mac",
	"windows", "linux", "chrome", "firefox", "safari", "edge",
}

// ResolveTemplate returns the descriptor for name, falling back to the
// "notification" descriptor for unrecognized names. Total; never fails.
func ResolveTemplate(name string) TemplateDescriptor {
	if d, ok := templates[name]; ok {
		return d
	}
	return templates[DefaultTemplate]
}

// KnownTemplate reports whether name is one of the fixed template names.
func KnownTemplate(name string) bool {
	_, ok := templates[name]
	return ok
}

// ResolveCategory returns the descriptor for name, falling back to the
// "other" descriptor for unrecognized names. Total; never fails.
func ResolveCategory(name string) CategoryDescriptor {
	if d, ok := categories[name]; ok {
		return d
	}
	return categories[DefaultCategory]
}

// KnownCategory reports whether name is one of the fixed category names.
func KnownCategory(name string) bool {
	_, ok := categories[name]
	return ok
}

// TemplateNames returns the template names in enumeration order.
func TemplateNames() []string {
	out := make([]string, len(templateNames))
	copy(out, templateNames)
	return out
}

// CategoryNames returns the category names in enumeration order.
func CategoryNames() []string {
	out := make([]string, len(categoryNames))
	copy(out, categoryNames)
	return out
}

// Sounds returns the provider's supported sound identifiers.
func Sounds() []string {
	out := make([]string, len(sounds))
	copy(out, sounds)
	return out
}

// DeviceTypes returns the supported device platform identifiers.
func DeviceTypes() []string {
	out := make([]string, len(deviceTypes))
	copy(out, deviceTypes)
	return out
}
