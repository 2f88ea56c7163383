package middleware

import (
	"net/http"

	"github.com/trampo-app/trampo/internal/payments"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
)

// WebhookIPAllowList rejects webhook deliveries from addresses outside the
// allow-list. A nil list disables the check.
func WebhookIPAllowList(list *payments.AllowList, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if list == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetClientIP(r)
			if !list.Allows(ip) {
				log.WithFields(map[string]interface{}{
					"client_ip":   ip,
					"remote_addr": r.RemoteAddr,
					"request_id":  GetRequestID(r),
				}).Warn("Webhook from address outside the allow-list")
				utils.WriteError(w, errors.Forbidden("Address not allowed"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
