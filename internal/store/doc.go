// Package store defines the persistence contracts of the book API. The
// interfaces keep services independent of the backend; implementations live
// under internal/platform (memory and postgres).
package store
