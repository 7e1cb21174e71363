package department

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/department"
)

type DepartmentServiceImpl struct {
	departmentRepo department.DepartmentRepository
}

func NewDepartmentService(departmentRepo department.DepartmentRepository) department.DepartmentService {
	return &DepartmentServiceImpl{departmentRepo: departmentRepo}
}

func mapDepartmentToResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		ParentID:      d.ParentID,
		Description:   d.Description,
		EmployeeCount: d.EmployeeCount,
		CreatedAt:     d.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     d.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, mapDepartmentToResponse(d))
	}
	return responses, nil
}

// Tree implements department.DepartmentService. Nodes whose parent is
// missing are returned as roots.
func (s *DepartmentServiceImpl) Tree(ctx context.Context) ([]*department.DepartmentTreeNode, error) {
	departments, err := s.departmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return buildTree(departments), nil
}

func buildTree(departments []department.Department) []*department.DepartmentTreeNode {
	nodes := make(map[int64]*department.DepartmentTreeNode, len(departments))
	for _, d := range departments {
		nodes[d.ID] = &department.DepartmentTreeNode{
			DepartmentResponse: mapDepartmentToResponse(d),
			Children:           []*department.DepartmentTreeNode{},
		}
	}

	roots := make([]*department.DepartmentTreeNode, 0)
	for _, d := range departments {
		node := nodes[d.ID]
		if d.ParentID != nil {
			if parent, ok := nodes[*d.ParentID]; ok && *d.ParentID != d.ID {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Get implements department.DepartmentService.
func (s *DepartmentServiceImpl) Get(ctx context.Context, id int64) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return mapDepartmentToResponse(d), nil
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := s.ensureParentExists(ctx, req.ParentID); err != nil {
		return department.DepartmentResponse{}, err
	}

	exists, err := s.departmentRepo.SiblingNameExists(ctx, req.ParentID, req.Name, nil)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return mapDepartmentToResponse(created), nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	existing, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.ParentID != nil {
		if *req.ParentID == req.ID {
			return department.DepartmentResponse{}, department.ErrDepartmentCycle
		}
		if err := s.ensureParentExists(ctx, req.ParentID); err != nil {
			return department.DepartmentResponse{}, err
		}
		if err := s.ensureNotDescendant(ctx, req.ID, *req.ParentID); err != nil {
			return department.DepartmentResponse{}, err
		}
	}

	exists, err := s.departmentRepo.SiblingNameExists(ctx, req.ParentID, req.Name, &req.ID)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	}

	existing.Name = req.Name
	existing.ParentID = req.ParentID
	existing.Description = req.Description

	updated, err := s.departmentRepo.Update(ctx, existing)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return mapDepartmentToResponse(updated), nil
}

// Delete implements department.DepartmentService.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	children, err := s.departmentRepo.CountChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count sub-departments: %w", err)
	}
	if children > 0 {
		return department.ErrDepartmentHasChildren
	}

	employees, err := s.departmentRepo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}
	if employees > 0 {
		return department.ErrDepartmentHasEmployees
	}

	return s.departmentRepo.Delete(ctx, id)
}

func (s *DepartmentServiceImpl) ensureParentExists(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if _, err := s.departmentRepo.GetByID(ctx, *parentID); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.ErrParentDepartmentNotFound
		}
		return err
	}
	return nil
}

// ensureNotDescendant walks up from newParentID and fails if id is reached.
func (s *DepartmentServiceImpl) ensureNotDescendant(ctx context.Context, id, newParentID int64) error {
	departments, err := s.departmentRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}

	parents := make(map[int64]*int64, len(departments))
	for _, d := range departments {
		parents[d.ID] = d.ParentID
	}

	visited := make(map[int64]bool)
	current := &newParentID
	for current != nil {
		if *current == id {
			return department.ErrDepartmentCycle
		}
		if visited[*current] {
			// pre-existing loop in stored data
			return department.ErrDepartmentCycle
		}
		visited[*current] = true
		current = parents[*current]
	}
	return nil
}
