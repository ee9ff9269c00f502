// Package middleware adapts a [jwt.Issuer] to net/http.
//
//   - [RequireToken] rejects requests without a valid bearer token.
//   - [OptionalToken] decodes a token when present and passes anonymous
//     requests through.
//
// Verified claims are stored in the request context and read back with
// [ClaimsFromContext]. Rejections are written as the same JSON envelope the
// issuer returns:
//
//	{"error":{"code":401,"status":"error","message":"Expired token"}}
//
// The issuer is shared across requests; reconfigure it only before serving.
package middleware
