// Package http provides JSON response helpers for handlers.
//
//	res := gohttp.NewResponse(w)
//	res.Success(map[string]any{"id": 1})     // 200 {"data": {...}}
//	res.Error(http.StatusConflict, "taken")  // 409 {"message": "taken"}
//	res.NotFound()                           // 404 {"message": "Not found."}
//	res.Unprocessable("bad override")        // 422
//	res.ServerError()                        // 500
package http
