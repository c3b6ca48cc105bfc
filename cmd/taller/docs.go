package main

// @title Taller Backend API
// @version 1.0
// @description Backend for an auto repair shop: parts inventory, supplier purchases, work orders, customers and vehicles.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/taller-sys/taller-backend
// @contact.email soporte@example.com

// @license.name MIT
// @license.url https://github.com/taller-sys/taller-backend/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Usuarios
// @tag.description Account management endpoints

// @tag.name Repuestos
// @tag.description Parts and stock endpoints

// @tag.name Compras
// @tag.description Supplier purchase endpoints

// @tag.name Proveedores
// @tag.description Supplier endpoints

// @tag.name Ordenes
// @tag.description Work order endpoints

// @tag.name Clientes
// @tag.description Customer endpoints

// @tag.name Vehiculos
// @tag.description Vehicle endpoints

// @tag.name Health
// @tag.description Health check endpoints
