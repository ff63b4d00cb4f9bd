// Generated test doubles for the ports interfaces.
// Regenerate with `go generate ./internal/mocks`.

package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_ports_mock.go github.com/openshelf/library-admin/internal/ports IdentityProvider,RecoverySender,SessionStore
