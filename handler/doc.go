// Package handler provides typed HTTP handlers.
//
// A HandlerFunc receives a request already decoded into a Go value and
// returns a Response that renders itself:
//
//	type SubmitRequest struct {
//		Name string `json:"name"`
//	}
//
//	func submit(ctx handler.Context, req SubmitRequest) handler.Response {
//		if req.Name == "" {
//			return handler.JSON(map[string]string{"message": "Name is required"},
//				handler.WithJSONStatus(http.StatusBadRequest))
//		}
//		return handler.JSON(map[string]bool{"ok": true})
//	}
//
//	r.Post("/submit", handler.Wrap(submit, handler.WithBinders(binder.JSON())))
//
// Binding and rendering failures go to the ErrorHandler. HTTPError values
// carry the status code and a client-safe message; any other error is
// answered with a generic 500 so internal details stay out of responses.
package handler
