// Package domain defines the core entities of the book catalogue (books,
// categories, users and their roles) together with their validation rules
// and the errors those rules produce.
package domain
