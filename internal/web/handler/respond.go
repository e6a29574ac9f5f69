// Package handler provides the shared response envelope and pagination
// helpers for the API handlers.
package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform JSON response shape used by every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// OK responds 200 with data.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

// OKMessage responds 200 with a message and data.
func OKMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Created responds 201 with a message and data.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// List responds 200 with a page of data and its pagination metadata.
func List(c *fiber.Ctx, data interface{}, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data, Pagination: &p})
}

// Fail responds with a failure message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// FailErr responds 500 with a message and the underlying error text.
func FailErr(c *fiber.Ctx, message string, err error) error {
	env := Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}

	return c.Status(fiber.StatusInternalServerError).JSON(env)
}
