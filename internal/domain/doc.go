// Package domain contains the core business entities, value objects, and
// domain logic of the application: the Task entity, its status lifecycle,
// calendar dates, partial-update payloads and listing queries. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
