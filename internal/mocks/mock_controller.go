// Package mocks holds hand-written gomock-style test doubles. Generated
// via the same pattern `mockgen` would produce, kept hand-written since
// core.Controller is small and stable.
package mocks

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"gitlab.com/akita/rvgpusim/core"
)

// MockController is a gomock.TestReporter-driven mock of core.Controller.
type MockController struct {
	ctrl     *gomock.Controller
	recorder *MockControllerMockRecorder
}

// MockControllerMockRecorder records expected calls on a MockController.
type MockControllerMockRecorder struct {
	mock *MockController
}

// NewMockController creates a MockController registered with ctrl.
func NewMockController(ctrl *gomock.Controller) *MockController {
	m := &MockController{ctrl: ctrl}
	m.recorder = &MockControllerMockRecorder{m}
	return m
}

// EXPECT returns an object that allows recording expected calls.
func (m *MockController) EXPECT() *MockControllerMockRecorder {
	return m.recorder
}

// Resume mocks core.Controller.Resume.
func (m *MockController) Resume(cid, wid int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Resume", cid, wid)
}

// Resume indicates an expected call of Resume.
func (mr *MockControllerMockRecorder) Resume(cid, wid interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resume", reflect.TypeOf((*MockController)(nil).Resume), cid, wid)
}

// Wspawn mocks core.Controller.Wspawn.
func (m *MockController) Wspawn(cid, numWarps int, startPC uint64) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Wspawn", cid, numWarps, startPC)
	ret0, _ := ret[0].(bool)
	return ret0
}

// Wspawn indicates an expected call of Wspawn.
func (mr *MockControllerMockRecorder) Wspawn(cid, numWarps, startPC interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Wspawn", reflect.TypeOf((*MockController)(nil).Wspawn), cid, numWarps, startPC)
}

// Barrier mocks core.Controller.Barrier.
func (m *MockController) Barrier(cid, barID, expectedCount, wid int) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Barrier", cid, barID, expectedCount, wid)
	ret0, _ := ret[0].(bool)
	return ret0
}

// Barrier indicates an expected call of Barrier.
func (mr *MockControllerMockRecorder) Barrier(cid, barID, expectedCount, wid interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Barrier", reflect.TypeOf((*MockController)(nil).Barrier), cid, barID, expectedCount, wid)
}

var _ core.Controller = (*MockController)(nil)
