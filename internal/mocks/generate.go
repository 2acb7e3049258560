// Package mocks provides mock implementations for testing the session
// gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe
// mocks for the port interfaces. Hand-written doubles for cases where a
// programmable stub reads better live in the session subpackage.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockAPI := mocks.NewMockMemberAPI(ctrl)
//	mockAPI.EXPECT().FetchRoleData(gomock.Any(), gomock.Any()).Return(resp, nil)
package mocks

// Generate mock for MemberAPI interface from internal/ports.
// This creates MockMemberAPI with methods: FetchRoleData, Login.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=member_api_mock.go github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports MemberAPI

// Generate mock for CredentialStore interface from internal/ports.
// This creates MockCredentialStore with methods: Read, Write, Clear.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_store_mock.go github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports CredentialStore
