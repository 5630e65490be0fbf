package api

import (
	"encoding/json"
	"net/http"

	"github.com/orderdesk/orderdesk-api/internal/models"
)

type listEmployeesResponse struct {
	Success   bool               `json:"success"`
	Count     int                `json:"count"`
	Employees []*models.Employee `json:"employees"`
}

func (s *Server) listEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees, err := s.employeeService.ListEmployees(r.Context())

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, listEmployeesResponse{
		Success:   true,
		Count:     len(employees),
		Employees: employees,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Employee *models.Employee `json:"employee"`
}

// loginHandler matches the supplied employee code against the directory.
// The password field carries the employee code.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	employee, err := s.employeeService.Authenticate(r.Context(), req.Email, req.Password)

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, loginResponse{
		Success:  true,
		Message:  "Login successful",
		Employee: employee,
	})
}
