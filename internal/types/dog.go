package types

import "time"

// Dog represents a record in the resource store.
type Dog struct {
	ID        int       `json:"id"`
	Name      string    `json:"name" example:"Rex"`
	Age       int       `json:"age" example:"4"`
	CreatedAt time.Time `json:"created_at"`
}

type DogResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type DogsResponse struct {
	Dogs []DogResponse `json:"dogs"`
}

type SingleDogResponse struct {
	Dog DogResponse `json:"dog"`
}

// CreateDogRequest uses pointers so a missing field can be told apart
// from a zero value when enforcing the presence check.
type CreateDogRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}
