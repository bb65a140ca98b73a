package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quangtu2509/FE-BE-THsport-sub001/controllers"
	"github.com/quangtu2509/FE-BE-THsport-sub001/middleware"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	User      *controllers.UserController
	Product   *controllers.ProductController
	Brand     *controllers.BrandController
	Category  *controllers.CategoryController
	Cart      *controllers.CartController
	Order     *controllers.OrderController
	Promotion *controllers.PromotionController
	Inventory *controllers.InventoryController
	Admin     *controllers.AdminController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public routes
	router.HandleFunc("/auth/register", c.User.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", c.User.Login).Methods(http.MethodPost)

	router.HandleFunc("/products", c.Product.GetProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{identifier}", c.Product.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/brands", c.Brand.GetBrands).Methods(http.MethodGet)
	router.HandleFunc("/brands/{identifier}", c.Brand.GetBrand).Methods(http.MethodGet)
	router.HandleFunc("/categories", c.Category.GetCategories).Methods(http.MethodGet)
	router.HandleFunc("/categories/{identifier}", c.Category.GetCategory).Methods(http.MethodGet)

	// Authenticated routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/auth/profile", c.User.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/auth/profile", c.User.UpdateProfile).Methods(http.MethodPut)

	protected.HandleFunc("/cart", c.Cart.GetCart).Methods(http.MethodGet)
	protected.HandleFunc("/cart", c.Cart.ClearCart).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/items", c.Cart.AddItem).Methods(http.MethodPost)
	protected.HandleFunc("/cart/items/{itemId}", c.Cart.UpdateItem).Methods(http.MethodPut)
	protected.HandleFunc("/cart/items/{itemId}", c.Cart.RemoveItem).Methods(http.MethodDelete)

	protected.HandleFunc("/orders", c.Order.CreateOrder).Methods(http.MethodPost)
	protected.HandleFunc("/orders", c.Order.ListOrders).Methods(http.MethodGet)
	protected.HandleFunc("/orders/history", c.Order.GetOrderHistory).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}", c.Order.GetOrder).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}", c.Order.DeleteOrder).Methods(http.MethodDelete)
	protected.HandleFunc("/orders/{id}/cancel", c.Order.CancelOrder).Methods(http.MethodPost)

	protected.HandleFunc("/promotions/apply", c.Promotion.ApplyPromotion).Methods(http.MethodPost)

	// Admin routes
	admin := router.PathPrefix("/").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)

	admin.HandleFunc("/products", c.Product.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{identifier}", c.Product.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{identifier}", c.Product.DeleteProduct).Methods(http.MethodDelete)

	admin.HandleFunc("/brands", c.Brand.CreateBrand).Methods(http.MethodPost)
	admin.HandleFunc("/brands/{identifier}", c.Brand.UpdateBrand).Methods(http.MethodPut)
	admin.HandleFunc("/brands/{identifier}", c.Brand.DeleteBrand).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", c.Category.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{identifier}", c.Category.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{identifier}", c.Category.DeleteCategory).Methods(http.MethodDelete)

	admin.HandleFunc("/orders/{id}/status", c.Order.UpdateOrderStatus).Methods(http.MethodPut)

	admin.HandleFunc("/promotions", c.Promotion.GetPromotions).Methods(http.MethodGet)
	admin.HandleFunc("/promotions", c.Promotion.CreatePromotion).Methods(http.MethodPost)
	admin.HandleFunc("/promotions/{id}", c.Promotion.UpdatePromotion).Methods(http.MethodPut)
	admin.HandleFunc("/promotions/{id}", c.Promotion.DeletePromotion).Methods(http.MethodDelete)

	admin.HandleFunc("/inventory", c.Inventory.ListInventory).Methods(http.MethodGet)
	admin.HandleFunc("/inventory/{productId}", c.Inventory.GetInventory).Methods(http.MethodGet)
	admin.HandleFunc("/inventory/{productId}", c.Inventory.SetInventory).Methods(http.MethodPut)
	admin.HandleFunc("/inventory/{productId}/adjust", c.Inventory.AdjustInventory).Methods(http.MethodPost)

	admin.HandleFunc("/admin/stats", c.Admin.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/admin/users", c.User.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/admin/users/{id}", c.User.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/admin/users/{id}", c.User.DeleteUser).Methods(http.MethodDelete)

	// Unmatched routes return the uniform JSON error shape
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "route not found")
	})
}
