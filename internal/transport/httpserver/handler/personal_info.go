package handler

import (
	"errors"
	"net/http"

	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
)

// personalInfoRequest accepts a record as it was fetched. id, user_id and
// updated_at are ignored; the path selects the user.
type personalInfoRequest struct {
	ID               uint               `json:"id"`
	UserID           uint               `json:"user_id"`
	UpdatedAt        string             `json:"updated_at"`
	Version          *int64             `json:"version"`
	FullName         string             `json:"full_name"`
	TIN              string             `json:"tin"`
	BirthDate        string             `json:"birth_date"`
	BirthPlace       string             `json:"birth_place"`
	Citizenship      string             `json:"citizenship"`
	CivilStatus      string             `json:"civil_status"`
	Gender           string             `json:"gender"`
	Address          string             `json:"address"`
	Phone            string             `json:"phone"`
	SpouseName       string             `json:"spouse_name"`
	SpouseTIN        string             `json:"spouse_tin"`
	EmploymentStatus string             `json:"employment_status"`
	PhilHealthNumber string             `json:"philhealth_number"`
	SSSNumber        string             `json:"sss_number"`
	PagIBIGNumber    string             `json:"pagibig_number"`
	Dependents       []dependentRequest `json:"dependents"`
}

// dependentRequest accepts dependents as they were fetched, so the owning
// personal_info_id may be echoed back. It is ignored.
type dependentRequest struct {
	ID              uint   `json:"id"`
	PersonalInfoID  uint   `json:"personal_info_id"`
	DepName         string `json:"dep_name"`
	DepBirthDate    string `json:"dep_birth_date"`
	DepRelationship string `json:"dep_relationship"`
}

type personalInfoResponse struct {
	ID               uint                `json:"id"`
	UserID           uint                `json:"user_id"`
	FullName         *string             `json:"full_name"`
	TIN              *string             `json:"tin"`
	BirthDate        *string             `json:"birth_date"`
	BirthPlace       *string             `json:"birth_place"`
	Citizenship      *string             `json:"citizenship"`
	CivilStatus      *string             `json:"civil_status"`
	Gender           *string             `json:"gender"`
	Address          *string             `json:"address"`
	Phone            *string             `json:"phone"`
	SpouseName       *string             `json:"spouse_name"`
	SpouseTIN        *string             `json:"spouse_tin"`
	EmploymentStatus string              `json:"employment_status"`
	PhilHealthNumber *string             `json:"philhealth_number"`
	SSSNumber        *string             `json:"sss_number"`
	PagIBIGNumber    *string             `json:"pagibig_number"`
	Version          int64               `json:"version"`
	UpdatedAt        string              `json:"updated_at"`
	Dependents       []dependentResponse `json:"dependents"`
}

type dependentResponse struct {
	ID              uint    `json:"id"`
	PersonalInfoID  uint    `json:"personal_info_id"`
	DepName         *string `json:"dep_name"`
	DepBirthDate    *string `json:"dep_birth_date"`
	DepRelationship *string `json:"dep_relationship"`
}

func (h *Handlers) GetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		h.log.BusinessError("personal_info.get: invalid user id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	record, err := h.PersonalInfo.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, personalinfodomain.ErrPersonalInfoNotFound) {
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}
		h.log.InternalError("personal_info.get: load failed", err, "user_id", userID)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toPersonalInfoResponse(*record))
}

func (h *Handlers) SavePersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		h.log.BusinessError("personal_info.save: invalid user id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	var req personalInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("personal_info.save: invalid json", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	result, err := h.PersonalInfo.Save(r.Context(), req.toInput(userID))
	if err != nil {
		switch {
		case errors.Is(err, personalinfodomain.ErrInvalidEmploymentStatus):
			h.log.BusinessError("personal_info.save: validation failed", err, "user_id", userID)
			writeError(w, http.StatusBadRequest, "validation_error", "employment_status must be employed or self-employed")
		case errors.Is(err, personalinfodomain.ErrInvalidDate):
			h.log.BusinessError("personal_info.save: validation failed", err, "user_id", userID)
			writeError(w, http.StatusBadRequest, "validation_error", "dates must be YYYY-MM-DD")
		case errors.Is(err, personalinfodomain.ErrDependentNameRequired):
			h.log.BusinessError("personal_info.save: validation failed", err, "user_id", userID)
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, personalinfodomain.ErrUserNotFound):
			h.log.BusinessError("personal_info.save: user not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "not_found", "user not found")
		case errors.Is(err, personalinfodomain.ErrVersionConflict):
			h.log.BusinessError("personal_info.save: stale version", err, "user_id", userID)
			writeError(w, http.StatusConflict, "version_conflict", "personal info was modified, reload and retry")
		default:
			h.log.InternalError("personal_info.save: save failed", err, "user_id", userID)
			writeInternalError(w)
		}
		return
	}

	for _, failure := range result.Failures {
		h.log.InternalError("personal_info.save: dependent write failed", failure.Err,
			"user_id", userID,
			"op", failure.Op,
			"dependent_id", failure.DependentID,
		)
	}
	h.log.Info("personal_info.save: saved",
		"user_id", userID,
		"deleted", result.Deleted,
		"updated", result.Updated,
		"inserted", result.Inserted,
		"failed", len(result.Failures),
	)

	writeJSON(w, http.StatusOK, toPersonalInfoResponse(result.Record))
}

func (req personalInfoRequest) toInput(userID uint) personalinfodomain.SaveInput {
	input := personalinfodomain.SaveInput{
		UserID:           userID,
		Version:          req.Version,
		FullName:         req.FullName,
		TIN:              req.TIN,
		BirthDate:        req.BirthDate,
		BirthPlace:       req.BirthPlace,
		Citizenship:      req.Citizenship,
		CivilStatus:      req.CivilStatus,
		Gender:           req.Gender,
		Address:          req.Address,
		Phone:            req.Phone,
		SpouseName:       req.SpouseName,
		SpouseTIN:        req.SpouseTIN,
		EmploymentStatus: req.EmploymentStatus,
		PhilHealthNumber: req.PhilHealthNumber,
		SSSNumber:        req.SSSNumber,
		PagIBIGNumber:    req.PagIBIGNumber,
		Dependents:       make([]personalinfodomain.DependentInput, 0, len(req.Dependents)),
	}
	for _, dep := range req.Dependents {
		input.Dependents = append(input.Dependents, personalinfodomain.DependentInput{
			ID:           dep.ID,
			Name:         dep.DepName,
			BirthDate:    dep.DepBirthDate,
			Relationship: dep.DepRelationship,
		})
	}
	return input
}

func toPersonalInfoResponse(record personalinfodomain.Record) personalInfoResponse {
	info := record.Info
	resp := personalInfoResponse{
		ID:               info.ID,
		UserID:           info.UserID,
		FullName:         info.FullName,
		TIN:              info.TIN,
		BirthDate:        personalinfodomain.FormatDate(info.BirthDate),
		BirthPlace:       info.BirthPlace,
		Citizenship:      info.Citizenship,
		CivilStatus:      info.CivilStatus,
		Gender:           info.Gender,
		Address:          info.Address,
		Phone:            info.Phone,
		SpouseName:       info.SpouseName,
		SpouseTIN:        info.SpouseTIN,
		EmploymentStatus: info.EmploymentStatus,
		PhilHealthNumber: info.PhilHealthNumber,
		SSSNumber:        info.SSSNumber,
		PagIBIGNumber:    info.PagIBIGNumber,
		Version:          info.Version,
		UpdatedAt:        formatTimestamp(info.UpdatedAt),
		Dependents:       make([]dependentResponse, 0, len(record.Dependents)),
	}
	for _, dep := range record.Dependents {
		resp.Dependents = append(resp.Dependents, dependentResponse{
			ID:              dep.ID,
			PersonalInfoID:  dep.PersonalInfoID,
			DepName:         dep.DepName,
			DepBirthDate:    personalinfodomain.FormatDate(dep.DepBirthDate),
			DepRelationship: dep.DepRelationship,
		})
	}
	return resp
}
