package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/pushrelay/pushrelay/internal/pushover"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// stringEnum builds an enum whose value names and values are the same strings,
// so resolver args come back as the plain identifiers the domain tables use.
func stringEnum(name string, values []string) *graphql.Enum {
	config := graphql.EnumValueConfigMap{}
	for _, v := range values {
		config[v] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: name, Values: config})
}

// convenienceMutation describes a specialized mutation taking only message and
// title, with a fixed default option layer.
type convenienceMutation struct {
	op         string
	successMsg string
	defaults   pushover.Options
}

// NewSchema builds the executable schema against the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	templateTypeEnum := stringEnum("TemplateType", pushover.TemplateNames())
	categoryEnum := stringEnum("NotificationCategory", pushover.CategoryNames())
	soundEnum := stringEnum("Sound", pushover.Sounds())
	deviceTypeEnum := stringEnum("DeviceType", pushover.DeviceTypes())

	priorityEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Priority",
		Values: graphql.EnumValueConfigMap{
			"LOWEST":    &graphql.EnumValueConfig{Value: -2},
			"LOW":       &graphql.EnumValueConfig{Value: -1},
			"NORMAL":    &graphql.EnumValueConfig{Value: 0},
			"HIGH":      &graphql.EnumValueConfig{Value: 1},
			"EMERGENCY": &graphql.EnumValueConfig{Value: 2},
		},
	})

	healthType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Health",
		Fields: graphql.Fields{
			"status":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"timestamp": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"service":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"version":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	limitsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Limits",
		Fields: graphql.Fields{
			"limit":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"remaining": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"reset":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"status":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"request":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	validationResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ValidationResult",
		Fields: graphql.Fields{
			"status":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"group":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"devices":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"licenses": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"request":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	rateLimitType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RateLimit",
		Fields: graphql.Fields{
			"limit":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"remaining": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"reset":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	notificationResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "NotificationResponse",
		Fields: graphql.Fields{
			"status":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"request":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"receipt":   &graphql.Field{Type: graphql.String},
			"rateLimit": &graphql.Field{Type: rateLimitType},
		},
	})

	sendNotificationResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SendNotificationResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"status":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"data":    &graphql.Field{Type: graphql.NewNonNull(notificationResponseType)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	emergencyResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EmergencyResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"status":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"data":    &graphql.Field{Type: graphql.NewNonNull(notificationResponseType)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	templateResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TemplateResponse",
		Fields: graphql.Fields{
			"success":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"status":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"data":     &graphql.Field{Type: graphql.NewNonNull(notificationResponseType)},
			"template": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"message":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	batchItemResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BatchItemResult",
		Fields: graphql.Fields{
			"success":   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"status":    &graphql.Field{Type: graphql.Int},
			"request":   &graphql.Field{Type: graphql.String},
			"receipt":   &graphql.Field{Type: graphql.String},
			"rateLimit": &graphql.Field{Type: rateLimitType},
			"error":     &graphql.Field{Type: graphql.String},
		},
	})

	batchNotificationResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BatchNotificationResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"status":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"data":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(batchItemResultType)))},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"sent":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"failed":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	sendNotificationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SendNotificationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"message":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"title":             &graphql.InputObjectFieldConfig{Type: graphql.String},
			"priority":          &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"url":               &graphql.InputObjectFieldConfig{Type: graphql.String},
			"url_title":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"html":              &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
			"device":            &graphql.InputObjectFieldConfig{Type: graphql.String},
			"sound":             &graphql.InputObjectFieldConfig{Type: graphql.String},
			"ttl":               &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"expire":            &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"retry":             &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"timestamp":         &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"callback":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"attachment":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"attachment_base64": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"attachment_type":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	emergencyInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmergencyInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"message":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"title":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"url":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"url_title": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"expire":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"retry":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"callback":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	templateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TemplateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"message":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"title":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"priority":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"url":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"url_title": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"html":      &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
			"device":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"sound":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"ttl":       &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"timestamp": &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"callback":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	validateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ValidateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"user":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"device": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	batchNotificationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BatchNotificationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"notifications": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(sendNotificationInput)))},
			"delay":         &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type:    graphql.NewNonNull(healthType),
				Resolve: r.resolveHealth,
			},
			"limits": &graphql.Field{
				Type:    graphql.NewNonNull(limitsType),
				Resolve: r.resolveLimits,
			},
			"sounds": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return pushover.Sounds(), nil
				},
			},
			"devices": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return pushover.DeviceTypes(), nil
				},
			},
			"templates": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(templateTypeEnum))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return pushover.TemplateNames(), nil
				},
			},
		},
	})

	mutationFields := graphql.Fields{
		"sendNotification": &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(sendNotificationInput)},
			},
			Resolve: r.resolveSendNotification,
		},
		"sendEmergency": &graphql.Field{
			Type: graphql.NewNonNull(emergencyResponseType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(emergencyInput)},
			},
			Resolve: r.resolveSendEmergency,
		},
		"sendTemplate": &graphql.Field{
			Type: graphql.NewNonNull(templateResponseType),
			Args: graphql.FieldConfigArgument{
				"template": &graphql.ArgumentConfig{Type: graphql.NewNonNull(templateTypeEnum)},
				"input":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(templateInput)},
			},
			Resolve: r.resolveSendTemplate,
		},
		"sendBatch": &graphql.Field{
			Type: graphql.NewNonNull(batchNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(batchNotificationInput)},
			},
			Resolve: r.resolveSendBatch,
		},
		"validateUser": &graphql.Field{
			Type: graphql.NewNonNull(validationResultType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(validateUserInput)},
			},
			Resolve: r.resolveValidateUser,
		},
		"sendSystemAlert": &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"message":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":    &graphql.ArgumentConfig{Type: graphql.String},
				"priority": &graphql.ArgumentConfig{Type: priorityEnum},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				prio := 0
				if v, ok := p.Args["priority"].(int); ok {
					prio = v
				}
				defaults := pushover.Options{Title: strPtr("⚙️ System Alert"), Priority: &prio, Sound: strPtr("mechanical")}
				caller := pushover.Options{Title: optString(p.Args, "title")}
				return r.specializedSend(p, "send system alert", "System alert sent successfully", defaults, caller)
			},
		},
		"sendUserNotification": &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"message": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":   &graphql.ArgumentConfig{Type: graphql.String},
				"device":  &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				defaults := pushover.Options{Title: strPtr("👤 User Notification"), Priority: intPtr(0), Sound: strPtr("incoming")}
				caller := pushover.Options{Title: optString(p.Args, "title"), Device: optString(p.Args, "device")}
				return r.specializedSend(p, "send user notification", "User notification sent successfully", defaults, caller)
			},
		},
		"sendBusinessAlert": &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"message":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":    &graphql.ArgumentConfig{Type: graphql.String},
				"priority": &graphql.ArgumentConfig{Type: priorityEnum},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				prio := 0
				if v, ok := p.Args["priority"].(int); ok {
					prio = v
				}
				defaults := pushover.Options{Title: strPtr("💼 Business Alert"), Priority: &prio, Sound: strPtr("cashregister")}
				caller := pushover.Options{Title: optString(p.Args, "title")}
				return r.specializedSend(p, "send business alert", "Business alert sent successfully", defaults, caller)
			},
		},
		"sendMonitoringAlert": &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"message": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":   &graphql.ArgumentConfig{Type: graphql.String},
				"url":     &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				defaults := pushover.Options{Title: strPtr("📊 Monitoring Alert"), Priority: intPtr(1), Sound: strPtr("spacealarm")}
				caller := pushover.Options{Title: optString(p.Args, "title")}
				if u := optString(p.Args, "url"); u != nil {
					caller.URL = u
					caller.URLTitle = strPtr("View Dashboard")
				}
				return r.specializedSend(p, "send monitoring alert", "Monitoring alert sent successfully", defaults, caller)
			},
		},
		"sendNewsNotification": &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"message": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":   &graphql.ArgumentConfig{Type: graphql.String},
				"url":     &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				defaults := pushover.Options{Title: strPtr("📰 News Notification"), Priority: intPtr(0), Sound: strPtr("bugle")}
				caller := pushover.Options{Title: optString(p.Args, "title")}
				if u := optString(p.Args, "url"); u != nil {
					caller.URL = u
					caller.URLTitle = strPtr("Read More")
				}
				return r.specializedSend(p, "send news notification", "News notification sent successfully", defaults, caller)
			},
		},
		"sendByCategory": &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"category": &graphql.ArgumentConfig{Type: graphql.NewNonNull(categoryEnum)},
				"message":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":    &graphql.ArgumentConfig{Type: graphql.String},
				"priority": &graphql.ArgumentConfig{Type: priorityEnum},
			},
			Resolve: r.resolveSendByCategory,
		},
	}

	// The remaining convenience mutations only take message and title.
	convenience := map[string]convenienceMutation{
		"sendSecurityAlert": {
			op:         "send security alert",
			successMsg: "Security alert sent successfully",
			defaults: pushover.Options{
				Title:    strPtr("🔒 Security Alert"),
				Priority: intPtr(2),
				Sound:    strPtr("siren"),
				Expire:   intPtr(3600),
				Retry:    intPtr(60),
			},
		},
		"sendPaymentNotification": {
			op:         "send payment notification",
			successMsg: "Payment notification sent successfully",
			defaults:   pushover.Options{Title: strPtr("💳 Payment Notification"), Priority: intPtr(1), Sound: strPtr("cashregister")},
		},
		"sendWeatherAlert": {
			op:         "send weather alert",
			successMsg: "Weather alert sent successfully",
			defaults:   pushover.Options{Title: strPtr("🌤️ Weather Alert"), Priority: intPtr(0), Sound: strPtr("cosmic")},
		},
		"sendSocialNotification": {
			op:         "send social notification",
			successMsg: "Social notification sent successfully",
			defaults:   pushover.Options{Title: strPtr("📱 Social Notification"), Priority: intPtr(-1), Sound: strPtr("incoming")},
		},
		"sendEmailNotification": {
			op:         "send email notification",
			successMsg: "Email notification sent successfully",
			defaults:   pushover.Options{Title: strPtr("📧 Email Notification"), Priority: intPtr(0), Sound: strPtr("incoming")},
		},
		"sendSMSNotification": {
			op:         "send SMS notification",
			successMsg: "SMS notification sent successfully",
			defaults:   pushover.Options{Title: strPtr("💬 SMS Notification"), Priority: intPtr(1), Sound: strPtr("magic")},
		},
		"sendCallNotification": {
			op:         "send call notification",
			successMsg: "Call notification sent successfully",
			defaults: pushover.Options{
				Title:    strPtr("📞 Call Notification"),
				Priority: intPtr(2),
				Sound:    strPtr("siren"),
				Expire:   intPtr(3600),
				Retry:    intPtr(60),
			},
		},
	}
	for name, m := range convenience {
		m := m
		mutationFields[name] = &graphql.Field{
			Type: graphql.NewNonNull(sendNotificationResponseType),
			Args: graphql.FieldConfigArgument{
				"message": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":   &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				caller := pushover.Options{Title: optString(p.Args, "title")}
				return r.specializedSend(p, m.op, m.successMsg, m.defaults, caller)
			},
		}
	}

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutation",
		Fields: mutationFields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
		// Sound and DeviceType are not referenced by any field but stay in the
		// schema for introspection-driven clients.
		Types: []graphql.Type{soundEnum, deviceTypeEnum},
	})
}
