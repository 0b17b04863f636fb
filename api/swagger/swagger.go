package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Enrollment API",
        "description": "Courses, students and the enrollments between them",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Students", "description": "Student records"},
        {"name": "Enrollments", "description": "Student to course enrollments"},
        {"name": "Operations", "description": "Probes and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Database reachable"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/course": {
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Course"}},
                    "400": {"description": "COURSE001 or COURSE002", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "course_code already exists"}
                }
            }
        },
        "/api/course/{course_id}": {
            "parameters": [
                {"name": "course_id", "in": "path", "required": true, "type": "integer"}
            ],
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Course"}},
                    "404": {"description": "Course not found"}
                }
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Update course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Course"}},
                    "400": {"description": "Missing field or course_code already exists", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Course not found"}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course and its enrollments",
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/api/student": {
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "STUDENT001 or STUDENT002", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "roll_number already exists"}
                }
            }
        },
        "/api/student/{student_id}": {
            "parameters": [
                {"name": "student_id", "in": "path", "required": true, "type": "integer"}
            ],
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Student not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Missing field or Rollno1", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Student not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student and their enrollments",
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/api/student/{student_id}/course": {
            "parameters": [
                {"name": "student_id", "in": "path", "required": true, "type": "integer"}
            ],
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a student's enrollments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Enrollment"}}},
                    "400": {"description": "ENROLLMENT002", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Student has no enrollments"}
                }
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll student in a course",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "ENROLLMENT002, Error1, ENROLLMENT001 or Error2", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/student/{student_id}/course/{course_id}": {
            "parameters": [
                {"name": "student_id", "in": "path", "required": true, "type": "integer"},
                {"name": "course_id", "in": "path", "required": true, "type": "integer"}
            ],
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Remove a student from a course",
                "responses": {
                    "200": {"description": "Deleted"},
                    "400": {"description": "Error23", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Enrollment not found"}
                }
            }
        }
    },
    "definitions": {
        "Course": {
            "type": "object",
            "properties": {
                "course_id": {"type": "integer"},
                "course_name": {"type": "string"},
                "course_code": {"type": "string"},
                "course_description": {"type": "string", "x-nullable": true}
            }
        },
        "CourseRequest": {
            "type": "object",
            "required": ["course_name", "course_code"],
            "properties": {
                "course_name": {"type": "string"},
                "course_code": {"type": "string"},
                "course_description": {"type": "string"}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "student_id": {"type": "integer"},
                "roll_number": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string", "x-nullable": true}
            }
        },
        "StudentRequest": {
            "type": "object",
            "required": ["roll_number", "first_name"],
            "properties": {
                "roll_number": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "Enrollment": {
            "type": "object",
            "properties": {
                "enrollment_id": {"type": "integer"},
                "student_id": {"type": "integer"},
                "course_id": {"type": "integer"}
            }
        },
        "EnrollmentRequest": {
            "type": "object",
            "required": ["course_id"],
            "properties": {
                "course_id": {"type": "integer"}
            }
        },
        "Error": {
            "type": "object",
            "properties": {
                "error_code": {"type": "string"},
                "error_message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
